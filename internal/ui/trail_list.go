package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
)

// Cursor row style: black text on bright green
var cursorRowSty = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(ColorMatrixGreen).
	Bold(true)

// RenderTrailList renders the scrollable trail panel, newest reading first,
// each row faded the way the radar fades it.
func RenderTrailList(entries []radar.HistoryEntry, width, height int, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	// Fixed header: title + column names + separator (3 lines)
	title := StylePanelTitle.Render(fmt.Sprintf("TRAIL [%d]", len(entries)))
	columns := StyleLabel.Render(truncRaw(" age  angle  distance", innerW))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, columns, separator}
	headerCount := len(headerLines)

	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}
	rowSpace := innerH - headerCount

	var rows []string
	if len(entries) == 0 {
		rows = append(rows, "", StyleHelp.Render(" No readings..."), StyleHelp.Render(" Waiting for sensor"))
	} else {
		// Viewport start keeps the cursor visible.
		viewStart := 0
		if cursorIndex >= rowSpace {
			viewStart = cursorIndex - rowSpace + 1
		}
		for i := viewStart; i < len(entries) && len(rows) < rowSpace; i++ {
			rows = append(rows, renderTrailEntry(entries[i], innerW, i == cursorIndex))
		}
	}

	if len(rows) > rowSpace {
		rows = rows[:rowSpace]
	}
	for len(rows) < rowSpace {
		rows = append(rows, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, rows...)

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
	return ClampLines(rendered, height)
}

func renderTrailEntry(e radar.HistoryEntry, maxW int, isCursor bool) string {
	body := fmt.Sprintf(" %3d  %4d°  %-8s ", e.Age, e.Angle, radar.DistanceLabel(e.Distance))
	mark := " "
	if e.Detected() {
		mark = "*"
	}
	raw := truncRaw(body+mark, maxW)

	if isCursor {
		return cursorRowSty.Render(raw)
	}

	lineSty := lipgloss.NewStyle().Foreground(fadeColor(radar.TrailColor(e.Age)))
	bodyW := lipgloss.Width(body)
	if !e.Detected() || bodyW+1 > maxW {
		return lineSty.Render(raw)
	}
	blipSty := StyleBlipMark
	if e.Age > 0 {
		blipSty = blipSty.Foreground(fadeColor(radar.BlipColor(e.Age)))
	}
	return lineSty.Render(body) + blipSty.Render(mark) + strings.Repeat(" ", maxW-bodyW-1)
}

func fadeColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(hexColor(c))
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	n := lipgloss.Width(s)
	if n > w {
		r := []rune(s)
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-n)
}
