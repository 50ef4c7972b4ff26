//go:build !js

package desktop

import (
	"fmt"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/gekko3d/backdrop/rt/surface"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the preview window. Width and Height are in screen coordinates.
type WindowConfig struct {
	Title         string
	Width, Height int
	// PixelRatio overrides the ratio between framebuffer and window size when positive.
	PixelRatio float64
}

// Window is a surface.Host backed by a GLFW window with an OpenGL 3.3 core context.
// GLFW requires it to be driven from the main thread; callers lock it with
// runtime.LockOSThread in an init function.
type Window struct {
	cfg    WindowConfig
	window *glfw.Window
	dev    *Device
	inited bool
}

func NewWindow(cfg WindowConfig) *Window {
	if cfg.Title == "" {
		cfg.Title = "backdrop"
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	return &Window{cfg: cfg}
}

func (w *Window) Attach() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("desktop: glfw init: %w", err)
	}
	w.inited = true

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(w.cfg.Width, w.cfg.Height, w.cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("desktop: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	w.window = win
	return nil
}

func (w *Window) Detach() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	w.dev = nil
	if w.inited {
		glfw.Terminate()
		w.inited = false
	}
}

func (w *Window) Context() (gpu.Device, error) {
	if w.dev != nil {
		return w.dev, nil
	}
	if w.window == nil {
		return nil, fmt.Errorf("desktop: window not attached")
	}
	dev, err := NewDevice()
	if err != nil {
		return nil, fmt.Errorf("desktop: opengl 3.3: %w: %w", probe.ErrUnsupported, err)
	}
	w.dev = dev
	return dev, nil
}

func (w *Window) CSSSize() (int, int) {
	if w.window == nil {
		return w.cfg.Width, w.cfg.Height
	}
	return w.window.GetSize()
}

func (w *Window) PixelRatio() float64 {
	if w.cfg.PixelRatio > 0 {
		return w.cfg.PixelRatio
	}
	if w.window == nil {
		return 1
	}
	fbW, _ := w.window.GetFramebufferSize()
	winW, _ := w.window.GetSize()
	if winW <= 0 {
		return 1
	}
	return float64(fbW) / float64(winW)
}

// SetBackingSize is a no-op: the window system owns the default framebuffer size.
func (w *Window) SetBackingSize(width, height int) {}

// GLFW exposes the underlying window for input binding; nil before Attach.
func (w *Window) GLFW() *glfw.Window { return w.window }

var _ surface.Host = (*Window)(nil)
