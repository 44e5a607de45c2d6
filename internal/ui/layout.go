package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks the menu bar, the body (radar panel beside the trail
// list) and the status bar. The body is clamped to bodyH lines so a panel
// that overflows cannot push the status bar off screen.
func ComposeLayout(menuBar, radarPanel, trailList, statusBar string, bodyH int) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		ClampLines(radarPanel, bodyH),
		ClampLines(trailList, bodyH))
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// ClampLines truncates or pads s to exactly n lines. lipgloss Height() only
// sets a minimum.
func ClampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
