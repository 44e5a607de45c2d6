package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
)

// RenderRangePanel renders the range map overlay that replaces the radar
// panel: coverage, nearest echo and a distance profile across the sweep.
func RenderRangePanel(ranges *radar.RangeMap, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("RANGE MAP")
	escHint := StyleHelp.Render("[M]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	nearest := "-"
	if r, ok := ranges.Nearest(); ok {
		nearest = fmt.Sprintf("%d cm @ %d°", r.Distance, r.Angle)
	}
	spread := "-"
	if ranges.Len() > 0 {
		mean, std := stat.MeanStdDev(rangeDistances(ranges), nil)
		spread = fmt.Sprintf("%.1f cm ± %.1f", mean, std)
	}
	fields := []struct{ label, value string }{
		{"Mapped", fmt.Sprintf("%d of %d angles", ranges.Len(), radar.AngleCount)},
		{"Nearest", nearest},
		{"Mean", spread},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+StyleValue.Render(f.value))
	}
	lines = append(lines, "")

	barWidth := innerW - 22
	if barWidth < 10 {
		barWidth = 10
	}
	coverage := float64(ranges.Len()) / float64(radar.AngleCount)
	lines = append(lines, StyleLabel.Render("  Coverage  ")+renderCoverageBar(coverage, barWidth)+
		StyleValue.Render(fmt.Sprintf(" %3.0f%%", coverage*100)))
	lines = append(lines, "")

	sparkW := innerW - 4
	if sparkW < 10 {
		sparkW = 10
	}
	lines = append(lines, StyleLabel.Render("  Profile (0° to 180°, taller is nearer):"))
	lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(renderProfile(ranges, sparkW)))

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func rangeDistances(ranges *radar.RangeMap) []float64 {
	angles := ranges.Angles()
	ds := make([]float64, len(angles))
	for i, a := range angles {
		d, _ := ranges.Lookup(a)
		ds[i] = float64(d)
	}
	return ds
}

func renderCoverageBar(ratio float64, width int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

// renderProfile buckets the sweep into width columns and draws the nearest
// recorded distance in each. Columns with no data stay blank.
func renderProfile(ranges *radar.RangeMap, width int) string {
	chars := []byte{'_', '.', '-', '~', '^'}
	span := config.MaxAngle - config.MinAngle + 1

	nearest := make([]int, width)
	for i := range nearest {
		nearest[i] = -1
	}
	for _, angle := range ranges.Angles() {
		col := (angle - config.MinAngle) * width / span
		d, _ := ranges.Lookup(angle)
		if nearest[col] < 0 || d < nearest[col] {
			nearest[col] = d
		}
	}

	var sb strings.Builder
	for _, d := range nearest {
		if d < 0 {
			sb.WriteByte(' ')
			continue
		}
		// Map MaxRange..MinRange onto the glyph ramp.
		closeness := float64(config.MaxRange-d) / float64(config.MaxRange-config.MinRange)
		idx := int(math.Round(closeness * float64(len(chars)-1)))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
