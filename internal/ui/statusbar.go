package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Scanning bool
	Stats    radar.Stats
	Mapped   int // Range map entries
	Pending  int // Parser bytes awaiting a delimiter
	Notice   string
	Failed   bool // Notice is an error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	status := StyleStatusScanning.Render("[SCANNING]")
	if !s.Scanning {
		status = StyleStatusPaused.Render("[PAUSED]")
	}

	info := fmt.Sprintf(" Readings: %d  Skipped: %d  Mapped: %d/%d  Buffered: %dB",
		s.Stats.Readings, s.Stats.ParseErrors(), s.Mapped, radar.AngleCount, s.Pending)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)
	if s.Notice != "" {
		sty := StyleStatusScanning
		if s.Failed {
			sty = StyleStatusError
		}
		content += "  " + sty.Render(s.Notice)
	}

	gap := width - 2 - lipgloss.Width(content) // bar padding
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
