package gpu

import "fmt"

// RenderTarget is an off-screen framebuffer with a color texture and a depth renderbuffer.
// It is never resized in place: callers release it and build a new one.
type RenderTarget struct {
	Framebuffer Framebuffer
	Color       Texture
	Depth       Renderbuffer
	Width       int
	Height      int

	dev Device
}

func NewRenderTarget(dev Device, width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render target %dx%d: %w", width, height, ErrIncompleteFramebuffer)
	}
	t := &RenderTarget{Width: width, Height: height, dev: dev}

	t.Framebuffer = dev.CreateFramebuffer()
	dev.BindFramebuffer(t.Framebuffer)

	t.Color = dev.CreateTexture()
	dev.BindTexture(t.Color)
	dev.TexImage2D(width, height, nil)
	dev.TexParameter(TextureMinFilter, Linear)
	dev.TexParameter(TextureMagFilter, Linear)
	dev.TexParameter(TextureWrapS, ClampToEdge)
	dev.TexParameter(TextureWrapT, ClampToEdge)

	t.Depth = dev.CreateRenderbuffer()
	dev.BindRenderbuffer(t.Depth)
	dev.RenderbufferStorageDepth(width, height)

	dev.FramebufferTexture(t.Color)
	dev.FramebufferRenderbuffer(t.Depth)

	complete := dev.FramebufferComplete()
	dev.BindFramebuffer(0)
	dev.BindTexture(0)
	dev.BindRenderbuffer(0)

	if !complete {
		t.Release()
		return nil, fmt.Errorf("render target %dx%d: %w", width, height, ErrIncompleteFramebuffer)
	}
	return t, nil
}

// Bind makes the target the draw destination and sets a matching viewport.
func (t *RenderTarget) Bind() {
	t.dev.BindFramebuffer(t.Framebuffer)
	t.dev.Viewport(0, 0, t.Width, t.Height)
}

// Release deletes all three objects. Safe on nil and on repeated calls.
func (t *RenderTarget) Release() {
	if t == nil || t.dev == nil {
		return
	}
	t.dev.DeleteTexture(t.Color)
	t.dev.DeleteRenderbuffer(t.Depth)
	t.dev.DeleteFramebuffer(t.Framebuffer)
	t.dev = nil
}
