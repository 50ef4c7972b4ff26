package hud

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const padding = 8

var (
	Background = color.RGBA{0, 0, 0, 204}
	TitleColor = color.RGBA{0, 204, 255, 255}
	TextColor  = color.RGBA{255, 255, 255, 255}
)

// NewFace parses the embedded Go Mono font at size points. It falls back to the
// fixed 7x13 bitmap face when parsing fails.
func NewFace(size float64) font.Face {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// MeasureText returns the pixel size of the panel for lines, padding included.
func MeasureText(face font.Face, lines []string) (int, int) {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	maxW := fixed.Int26_6(0)
	for _, line := range lines {
		if w := font.MeasureString(face, line); w > maxW {
			maxW = w
		}
	}
	return maxW.Ceil() + 2*padding, lineHeight*len(lines) + 2*padding
}

// Rasterize draws lines onto a translucent panel. The first line is the title.
func Rasterize(face font.Face, lines []string) *image.RGBA {
	w, h := MeasureText(face, lines)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	d := &font.Drawer{Dst: img, Face: face}
	for i, line := range lines {
		src := TextColor
		if i == 0 {
			src = TitleColor
		}
		d.Src = image.NewUniform(src)
		d.Dot = fixed.P(padding, padding+ascent+i*lineHeight)
		d.DrawString(line)
	}
	return img
}
