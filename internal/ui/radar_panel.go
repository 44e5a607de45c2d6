package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = "▀"

// RenderRadarPanel wraps the latest radar frame with a titled border.
func RenderRadarPanel(width, height int, frame image.Image) string {
	innerW := width - 4
	innerH := height - 3 // border and title
	if innerW < 4 {
		innerW = 4
	}
	if innerH < 2 {
		innerH = 2
	}

	body := StyleHelp.Render(" Waiting for sensor...")
	if frame != nil {
		body = HalfBlocks(frame, innerW, innerH)
	}

	content := StylePanelTitle.Render("Radar") + "\n" + body
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// FitCells returns the largest cell grid within maxCols x maxRows that shows
// an image with bounds b undistorted. Each cell holds two square pixels
// stacked vertically.
func FitCells(b image.Rectangle, maxCols, maxRows int) (cols, rows int) {
	if b.Empty() || maxCols < 1 || maxRows < 1 {
		return 0, 0
	}
	pw, ph := maxCols, maxRows*2
	if pw*b.Dy() > ph*b.Dx() {
		pw = ph * b.Dx() / b.Dy()
	} else {
		ph = pw * b.Dy() / b.Dx()
	}
	return max(pw, 1), max(ph/2, 1)
}

// HalfBlocks downsamples img to fit maxCols x maxRows terminal cells and
// draws it with upper half blocks: the foreground colors the top pixel and
// the background the bottom one. Runs of identical cells share one style.
func HalfBlocks(img image.Image, maxCols, maxRows int) string {
	cols, rows := FitCells(img.Bounds(), maxCols, maxRows)
	if cols == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	type cell struct{ top, bottom color.RGBA }
	styles := make(map[cell]lipgloss.Style)
	styleFor := func(c cell) lipgloss.Style {
		sty, ok := styles[c]
		if !ok {
			sty = lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(c.top))).
				Background(lipgloss.Color(hexColor(c.bottom)))
			styles[c] = sty
		}
		return sty
	}

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		run, runLen := cell{}, 0
		flush := func() {
			if runLen > 0 {
				sb.WriteString(styleFor(run).Render(strings.Repeat(halfBlock, runLen)))
			}
		}
		for x := 0; x < cols; x++ {
			c := cell{dst.RGBAAt(x, 2*y), dst.RGBAAt(x, 2*y+1)}
			if runLen > 0 && c == run {
				runLen++
				continue
			}
			flush()
			run, runLen = c, 1
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
