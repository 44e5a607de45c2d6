package radar

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"git.sr.ht/~sbinet/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

var (
	colorGreen      = color.RGBA{0, 180, 0, 255}
	colorBackground = color.RGBA{30, 30, 30, 255}
	colorStatusBar  = color.RGBA{15, 15, 15, 255}
)

const (
	labelPoints  = 6
	statusPoints = 9
)

// Status bar text anchors (baseline, native pixels).
var (
	degreeAnchor   = image.Pt(5, config.FrameHeight-5)
	distanceAnchor = image.Pt(config.FrameWidth/2-20, config.FrameHeight-5)
)

// Renderer draws radar frames. Every call starts from a freshly allocated
// image holding only the template, so nothing from an earlier frame can
// survive into the next one.
type Renderer struct {
	origin     image.Point
	scale      int
	labelFace  font.Face
	statusFace font.Face
}

// NewRenderer creates a renderer using the embedded Go font.
func NewRenderer() (*Renderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	labelFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelPoints,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("label face: %w", err)
	}
	statusFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    statusPoints,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("status face: %w", err)
	}

	return &Renderer{
		origin:     image.Pt(config.OriginX, config.OriginY),
		scale:      config.Scale,
		labelFace:  labelFace,
		statusFace: statusFace,
	}, nil
}

// Origin returns the native-resolution radar origin.
func (r *Renderer) Origin() image.Point {
	return r.origin
}

// Bounds returns the size of the frames Render produces.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, config.FrameWidth*r.scale, config.FrameHeight*r.scale)
}

// Render produces the display frame for the given history and latest
// reading: template, trail overlay and status values, upscaled.
func (r *Renderer) Render(h *History, latest Reading) *image.RGBA {
	return r.upscale(r.RenderNative(h, latest))
}

// Template produces the display frame with no readings: the radar shown
// before the sensor has reported anything.
func (r *Renderer) Template() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, config.FrameWidth, config.FrameHeight))
	r.drawTemplate(gg.NewContextForRGBA(img))
	return r.upscale(img)
}

// RenderNative produces the frame at native resolution.
func (r *Renderer) RenderNative(h *History, latest Reading) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, config.FrameWidth, config.FrameHeight))
	dc := gg.NewContextForRGBA(img)

	r.drawTemplate(dc)
	if h != nil {
		r.drawTrail(dc, h)
	}
	r.drawStatus(dc, latest)

	return img
}

func (r *Renderer) drawTemplate(dc *gg.Context) {
	w, h := float64(config.FrameWidth), float64(config.FrameHeight)
	ox, oy := px(r.origin.X), px(r.origin.Y)

	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetLineWidth(1)

	// Origin and range rings
	dc.SetColor(colorGreen)
	dc.DrawCircle(ox, oy, config.OriginRadius)
	dc.Fill()
	for k := 1; k <= config.RingCount; k++ {
		dc.DrawCircle(ox, oy, float64(k*config.RingStep))
		dc.Stroke()
	}

	// Angle guides
	dc.SetFontFace(r.labelFace)
	for angle := config.GuideStep; angle < config.MaxAngle; angle += config.GuideStep {
		r.drawRay(dc, angle, config.GuideLength, colorGreen)
		lp := LabelPoint(r.origin, angle, config.GuideLength)
		dc.DrawString(strconv.Itoa(angle), float64(lp.X), float64(lp.Y))
	}

	// Status bar
	sepY := px(config.FrameHeight - config.StatusBarH - 1)
	dc.DrawLine(0, sepY, w, sepY)
	dc.Stroke()
	dc.SetColor(colorStatusBar)
	dc.DrawRectangle(0, h-config.StatusBarH, w, config.StatusBarH)
	dc.Fill()

	dc.SetColor(colorGreen)
	dc.SetFontFace(r.statusFace)
	dc.DrawString("Degree:", float64(degreeAnchor.X), float64(degreeAnchor.Y))
	dc.DrawString("Distance:", float64(distanceAnchor.X), float64(distanceAnchor.Y))

	// Ring distance labels sit along the baseline, over the bar's top edge.
	dc.SetFontFace(r.labelFace)
	for k := 1; k <= config.RingCount; k++ {
		x := config.OriginX + k*config.RingStep - 5
		dc.DrawString(strconv.Itoa(k*config.RingLabelStep), float64(x), h-17)
	}
}

// drawTrail draws the history newest first, each line and blip faded by its
// age.
func (r *Renderer) drawTrail(dc *gg.Context, h *History) {
	for age, reading := range h.All() {
		r.drawRay(dc, reading.Angle, config.TrailLength, TrailColor(age))

		if reading.Detected() {
			p := Cartesian(r.origin, reading.Angle, reading.Distance*config.BlipScale)
			dc.SetColor(BlipColor(age))
			dc.DrawCircle(px(p.X), px(p.Y), config.BlipRadius)
			dc.Fill()
		}
	}
}

func (r *Renderer) drawStatus(dc *gg.Context, latest Reading) {
	dc.SetColor(colorGreen)
	dc.SetFontFace(r.statusFace)
	dc.DrawString(strconv.Itoa(latest.Angle), float64(degreeAnchor.X+55), float64(degreeAnchor.Y))
	dc.DrawString(DistanceLabel(latest.Distance), float64(distanceAnchor.X+65), float64(distanceAnchor.Y))
}

func (r *Renderer) drawRay(dc *gg.Context, angle, length int, c color.Color) {
	end := Cartesian(r.origin, angle, length)
	dc.SetColor(c)
	dc.DrawLine(px(r.origin.X), px(r.origin.Y), px(end.X), px(end.Y))
	dc.Stroke()
}

func (r *Renderer) upscale(src *image.RGBA) *image.RGBA {
	if r.scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*r.scale, src.Bounds().Dy()*r.scale))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// px centres a 1px stroke on the pixel at integer coordinate v.
func px(v int) float64 {
	return float64(v) + 0.5
}

// TrailColor is the color of the trail line drawn for the reading at age.
func TrailColor(age int) color.RGBA {
	return color.RGBA{0, fade(config.TrailGreen, config.FadeStep, age), 0, 255}
}

// BlipColor is the color of the blip drawn for the reading at age.
func BlipColor(age int) color.RGBA {
	return color.RGBA{fade(config.BlipRed, config.BlipFadeStep, age), 8, 0, 255}
}

func fade(base, step, age int) uint8 {
	v := base - step*age
	if v < 0 {
		return 0
	}
	return uint8(v)
}
