// Package surface owns the drawing surface: attaching it to the host, creating the
// graphics context and keeping the backing store in step with the viewport.
package surface

import (
	"fmt"
	"math"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
)

// MaxPixelRatio caps the device pixel ratio to bound fill cost on dense displays.
const MaxPixelRatio = 2.0

// Host is the platform side of a surface: a browser canvas or a desktop window.
type Host interface {
	// Attach inserts the surface into the host (DOM, window system).
	Attach() error
	// Detach removes it again. Must tolerate being called after a failed Attach.
	Detach()
	// Context creates or returns the graphics device. Errors wrap probe.ErrUnsupported
	// when no context can be created.
	Context() (gpu.Device, error)
	CSSSize() (width, height int)
	PixelRatio() float64
	SetBackingSize(width, height int)
}

// Layer is the presentation of the surface above the page. Only the web host uses it.
type Layer struct {
	ZIndex  int     `json:"zIndex"`
	Opacity float64 `json:"opacity"`
	// Parent is a CSS selector; empty means document.body.
	Parent string `json:"parent,omitempty"`
}

func DefaultLayer() Layer {
	return Layer{ZIndex: 2, Opacity: 0.4}
}

// ClampPixelRatio limits dpr to [1, MaxPixelRatio]. Non-finite values become 1.
func ClampPixelRatio(dpr float64) float64 {
	if math.IsNaN(dpr) || dpr < 1 {
		return 1
	}
	if dpr > MaxPixelRatio {
		return MaxPixelRatio
	}
	return dpr
}

// DeviceSize converts a CSS size to backing-store pixels. Each side is at least 1.
func DeviceSize(cssW, cssH int, dpr float64) (int, int) {
	r := ClampPixelRatio(dpr)
	w := int(math.Round(float64(cssW) * r))
	h := int(math.Round(float64(cssH) * r))
	return max(w, 1), max(h, 1)
}

type Manager struct {
	host   Host
	logger core.Logger
	dev    gpu.Device

	cssW, cssH int
	width      int
	height     int
	dpr        float64

	attached  bool
	destroyed bool
}

func New(host Host, logger core.Logger) *Manager {
	return &Manager{host: host, logger: core.OrNop(logger), dpr: 1}
}

// Create attaches the surface and obtains the device, sized to the host's current
// viewport. On failure the surface is detached again.
func (m *Manager) Create() (gpu.Device, error) {
	if m.destroyed {
		return nil, fmt.Errorf("surface: create after destroy")
	}
	if m.dev != nil {
		return m.dev, nil
	}
	if err := m.host.Attach(); err != nil {
		m.host.Detach()
		return nil, fmt.Errorf("surface: attach: %w", err)
	}
	m.attached = true

	dev, err := m.host.Context()
	if err != nil {
		m.host.Detach()
		m.attached = false
		return nil, fmt.Errorf("surface: context: %w", err)
	}
	m.dev = dev

	w, h := m.host.CSSSize()
	m.Resize(w, h)
	return dev, nil
}

// Resize recomputes the backing size from a CSS size and the host's pixel ratio,
// updates the host and the device viewport, and returns the device-pixel size.
func (m *Manager) Resize(cssW, cssH int) (int, int) {
	m.cssW, m.cssH = cssW, cssH
	m.dpr = ClampPixelRatio(m.host.PixelRatio())
	m.width, m.height = DeviceSize(cssW, cssH, m.dpr)

	if m.attached {
		m.host.SetBackingSize(m.width, m.height)
	}
	if m.dev != nil {
		m.dev.Viewport(0, 0, m.width, m.height)
	}
	m.logger.Debugf("surface resized: css=%dx%d dpr=%.2f device=%dx%d", cssW, cssH, m.dpr, m.width, m.height)
	return m.width, m.height
}

// Size is the backing-store size in device pixels.
func (m *Manager) Size() (int, int) { return m.width, m.height }

func (m *Manager) CSSSize() (int, int) { return m.cssW, m.cssH }

// PixelRatio is the clamped ratio used by the last Resize.
func (m *Manager) PixelRatio() float64 { return m.dpr }

func (m *Manager) Device() gpu.Device { return m.dev }

// Destroy detaches the surface. Safe to call repeatedly.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.attached {
		m.host.Detach()
		m.attached = false
	}
	m.dev = nil
}
