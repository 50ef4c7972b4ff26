package hud

import (
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestRasterizeSize(t *testing.T) {
	lines := []string{"Debug", "particles 1000"}
	img := Rasterize(basicfont.Face7x13, lines)

	// 14 glyphs of 7px plus padding; two 13px lines plus padding
	assert.Equal(t, 14*7+2*padding, img.Bounds().Dx())
	assert.Equal(t, 2*13+2*padding, img.Bounds().Dy())

	// a corner pixel is untouched background
	assert.Equal(t, Background, img.RGBAAt(0, 0))

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] == 255 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no glyph pixels were drawn")
	}
}

func TestNewFaceParsesEmbeddedFont(t *testing.T) {
	face := NewFace(12)
	require.NotNil(t, face)
	assert.NotEqual(t, basicfont.Face7x13, face)
	assert.Positive(t, face.Metrics().Height.Ceil())
}

func TestHUDUploadsOnlyOnChange(t *testing.T) {
	dev := gputest.NewRecorder()
	h := New(dev, nil, basicfont.Face7x13)
	require.True(t, h.Ready())

	h.Draw(800, 600)
	assert.Empty(t, dev.Draws, "nothing to draw before text is set")

	h.SetText([]string{"Debug", "fps 60"})
	h.Draw(800, 600)
	h.Draw(800, 600)
	h.SetText([]string{"Debug", "fps 60"})
	h.Draw(800, 600)
	assert.Equal(t, 1, h.Uploads())
	assert.Len(t, dev.Draws, 3)

	h.SetText([]string{"Debug", "fps 59"})
	h.Draw(800, 600)
	assert.Equal(t, 2, h.Uploads())

	for _, d := range dev.Draws {
		assert.True(t, d.Blend)
		assert.Zero(t, d.Framebuffer)
	}
}

func TestHUDRectTopRight(t *testing.T) {
	dev := gputest.NewRecorder()
	h := New(dev, nil, basicfont.Face7x13)
	h.SetText([]string{"ab"})

	r := h.Rect(200, 100)
	b := h.Image().Bounds()
	assert.InDelta(t, 1-2*float32(Margin)/200, r[2], 1e-6)
	assert.InDelta(t, 1-2*float32(Margin)/100, r[3], 1e-6)
	assert.InDelta(t, float32(b.Dx())*2/200, r[2]-r[0], 1e-5)
	assert.InDelta(t, float32(b.Dy())*2/100, r[3]-r[1], 1e-5)
}

func TestHUDShaderFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailShaders = []string{"u_rect"}
	h := New(dev, nil, basicfont.Face7x13)
	assert.False(t, h.Ready())

	h.SetText([]string{"x"})
	h.Draw(100, 100)
	assert.Empty(t, dev.Draws)
	h.Release()
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}

func TestHUDRelease(t *testing.T) {
	dev := gputest.NewRecorder()
	h := New(dev, nil, nil)
	h.SetText([]string{"x"})
	h.Draw(100, 100)
	h.Release()
	h.Release()
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}
