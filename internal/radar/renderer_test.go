package radar

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func historyOf(readings ...Reading) *History {
	h := NewHistory(config.HistoryCapacity)
	for _, r := range readings {
		h.Push(r)
	}
	return h
}

func TestRenderer_FrameSize(t *testing.T) {
	r := newTestRenderer(t)

	frame := r.Render(historyOf(Reading{90, 20}), Reading{90, 20})
	assert.Equal(t, image.Rect(0, 0, config.FrameWidth*config.Scale, config.FrameHeight*config.Scale), frame.Bounds())
	assert.Equal(t, frame.Bounds(), r.Bounds())

	native := r.RenderNative(nil, Reading{})
	assert.Equal(t, image.Rect(0, 0, config.FrameWidth, config.FrameHeight), native.Bounds())

	assert.Equal(t, r.Bounds(), r.Template().Bounds())
}

func TestRenderer_TemplateColors(t *testing.T) {
	r := newTestRenderer(t)
	img := r.RenderNative(nil, Reading{})

	assert.Equal(t, colorBackground, img.RGBAAt(1, 1), "background")
	assert.Equal(t, colorStatusBar, img.RGBAAt(config.FrameWidth-4, config.FrameHeight-10), "status bar")
	// The bar covers the lower half of the origin dot.
	o := r.Origin()
	assert.Equal(t, image.Pt(config.OriginX, config.OriginY), o)
	assert.Equal(t, colorGreen, img.RGBAAt(o.X, o.Y-2), "origin dot")
}

func TestRenderer_Blip(t *testing.T) {
	r := newTestRenderer(t)

	img := r.RenderNative(historyOf(Reading{90, 20}), Reading{90, 20})

	// 20cm at 90° sits 40px straight up from the origin.
	assert.Equal(t, color.RGBA{255, 8, 0, 255}, img.RGBAAt(config.OriginX, config.OriginY-40))
}

func TestRenderer_NoBlipOutsideDetection(t *testing.T) {
	r := newTestRenderer(t)

	for _, d := range []int{2, 50} {
		img := r.RenderNative(historyOf(Reading{90, d}), Reading{90, d})
		p := img.RGBAAt(config.OriginX, config.OriginY-2*d)
		assert.Less(t, p.R, uint8(200), "distance %d drew a blip", d)
	}
}

func TestRenderer_TrailFade(t *testing.T) {
	r := newTestRenderer(t)

	// 0° first, then 90°: the 0° line is one step older.
	img := r.RenderNative(historyOf(Reading{0, 60}, Reading{90, 60}), Reading{90, 60})

	newest := img.RGBAAt(config.OriginX, config.OriginY-50)
	older := img.RGBAAt(config.OriginX+50, config.OriginY)

	assert.InDelta(t, config.TrailGreen, int(newest.G), 2)
	assert.InDelta(t, config.TrailGreen-config.FadeStep, int(older.G), 2)
	assert.Zero(t, newest.R)
	assert.Zero(t, older.R)
}

func TestRenderer_NoGhosting(t *testing.T) {
	r := newTestRenderer(t)
	blip := image.Pt(config.OriginX, config.OriginY-40)

	first := r.RenderNative(historyOf(Reading{90, 20}), Reading{90, 20})
	require.Equal(t, uint8(255), first.RGBAAt(blip.X, blip.Y).R)

	template := r.RenderNative(nil, Reading{})
	second := r.RenderNative(historyOf(Reading{0, 60}), Reading{0, 60})
	assert.Equal(t, template.RGBAAt(blip.X, blip.Y), second.RGBAAt(blip.X, blip.Y))
	assert.NotSame(t, first, second)

	// Same input, same pixels.
	again := r.RenderNative(historyOf(Reading{90, 20}), Reading{90, 20})
	assert.Equal(t, first.Pix, again.Pix)
}

func TestFadeColors(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 200, 0, 255}, TrailColor(0))
	assert.Equal(t, color.RGBA{0, 5, 0, 255}, TrailColor(39))
	assert.Equal(t, color.RGBA{255, 8, 0, 255}, BlipColor(0))
	assert.Equal(t, color.RGBA{248, 8, 0, 255}, BlipColor(1))
	assert.Equal(t, color.RGBA{0, 8, 0, 255}, BlipColor(39))
}
