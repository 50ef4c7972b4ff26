// Package hud draws the debug overlay: a few lines of text rasterised on the CPU and
// shown as a textured quad in the top-right corner.
package hud

import (
	"image"
	"slices"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/shaders"
	"golang.org/x/image/font"
)

// Margin is the distance in device pixels from the top-right corner.
const Margin = 20

type HUD struct {
	dev    gpu.Device
	logger core.Logger
	face   font.Face

	program  gpu.Program
	uniforms gpu.Uniforms
	quad     *gpu.Quad
	texture  gpu.Texture

	lines   []string
	img     *image.RGBA
	dirty   bool
	uploads int
}

// New builds the overlay program. A build failure leaves the overlay inert.
func New(dev gpu.Device, logger core.Logger, face font.Face) *HUD {
	h := &HUD{dev: dev, logger: core.OrNop(logger), face: face}
	if h.face == nil {
		h.face = NewFace(12)
	}
	program, err := gpu.BuildProgram(dev, "hud", shaders.HUDVert, shaders.HUDFrag)
	if err != nil {
		h.logger.Errorf("hud program: %v", err)
		return h
	}
	h.program = program
	h.uniforms = gpu.LookupUniforms(dev, program, "u_texture", "u_rect")
	h.quad = gpu.NewQuad(dev)

	h.texture = dev.CreateTexture()
	dev.BindTexture(h.texture)
	dev.TexParameter(gpu.TextureMinFilter, gpu.Nearest)
	dev.TexParameter(gpu.TextureMagFilter, gpu.Nearest)
	dev.TexParameter(gpu.TextureWrapS, gpu.ClampToEdge)
	dev.TexParameter(gpu.TextureWrapT, gpu.ClampToEdge)
	dev.BindTexture(0)
	return h
}

func (h *HUD) Ready() bool { return h.program != 0 }

// SetText replaces the overlay text. Identical text is ignored so the texture is only
// re-uploaded when something changed.
func (h *HUD) SetText(lines []string) {
	if h.img != nil && slices.Equal(lines, h.lines) {
		return
	}
	h.lines = slices.Clone(lines)
	h.img = Rasterize(h.face, h.lines)
	h.dirty = true
}

// Uploads counts texture uploads since creation.
func (h *HUD) Uploads() int { return h.uploads }

// Image is the last rasterised panel, or nil before the first SetText.
func (h *HUD) Image() *image.RGBA { return h.img }

// Rect returns the panel corners in clip space for a viewport of width x height.
func (h *HUD) Rect(width, height int) [4]float32 {
	if h.img == nil || width <= 0 || height <= 0 {
		return [4]float32{}
	}
	b := h.img.Bounds()
	sx := 2 / float32(width)
	sy := 2 / float32(height)
	x1 := 1 - Margin*sx
	y1 := 1 - Margin*sy
	return [4]float32{x1 - float32(b.Dx())*sx, y1 - float32(b.Dy())*sy, x1, y1}
}

// Draw composites the panel over the default framebuffer.
func (h *HUD) Draw(width, height int) {
	if h.program == 0 || h.img == nil {
		return
	}
	if h.dirty {
		b := h.img.Bounds()
		h.dev.ActiveTexture(0)
		h.dev.BindTexture(h.texture)
		h.dev.TexImage2D(b.Dx(), b.Dy(), h.img.Pix)
		h.uploads++
		h.dirty = false
	}

	h.dev.BindFramebuffer(0)
	h.dev.Viewport(0, 0, width, height)
	h.dev.Disable(gpu.DepthTest)
	h.dev.Enable(gpu.Blend)
	h.dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)

	r := h.Rect(width, height)
	h.dev.UseProgram(h.program)
	h.dev.ActiveTexture(0)
	h.dev.BindTexture(h.texture)
	h.dev.Uniform1i(h.uniforms.Get("u_texture"), 0)
	h.dev.Uniform4f(h.uniforms.Get("u_rect"), r[0], r[1], r[2], r[3])
	h.quad.Draw()
}

func (h *HUD) Release() {
	if h.dev == nil {
		return
	}
	if h.program != 0 {
		h.dev.DeleteTexture(h.texture)
		h.quad.Release()
		h.dev.DeleteProgram(h.program)
		h.program = 0
	}
	h.dev = nil
}
