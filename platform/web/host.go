//go:build js && wasm

package web

import (
	"fmt"
	"strconv"
	"syscall/js"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/gekko3d/backdrop/rt/surface"
)

// Canvas is a surface.Host backed by a fixed, full-viewport <canvas> that never takes
// pointer events.
type Canvas struct {
	layer  surface.Layer
	canvas js.Value
	dev    *Device
}

func NewCanvas(layer surface.Layer) *Canvas {
	return &Canvas{layer: layer}
}

func (c *Canvas) Attach() error {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return fmt.Errorf("web: no document: %w", probe.ErrUnsupported)
	}
	parent := doc.Get("body")
	if c.layer.Parent != "" {
		parent = doc.Call("querySelector", c.layer.Parent)
	}
	if parent.IsNull() || parent.IsUndefined() {
		return fmt.Errorf("web: parent %q not found", c.layer.Parent)
	}

	canvas := doc.Call("createElement", "canvas")
	style := canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "0")
	style.Set("left", "0")
	style.Set("width", "100%")
	style.Set("height", "100%")
	style.Set("pointerEvents", "none")
	style.Set("zIndex", strconv.Itoa(c.layer.ZIndex))
	style.Set("opacity", strconv.FormatFloat(c.layer.Opacity, 'f', -1, 64))
	canvas.Call("setAttribute", "aria-hidden", "true")

	parent.Call("appendChild", canvas)
	c.canvas = canvas
	return nil
}

func (c *Canvas) Detach() {
	if c.canvas.IsUndefined() || c.canvas.IsNull() {
		return
	}
	if c.dev != nil {
		if ext := c.dev.gl.Call("getExtension", "WEBGL_lose_context"); ext.Truthy() {
			ext.Call("loseContext")
		}
		c.dev = nil
	}
	c.canvas.Call("remove")
	c.canvas = js.Undefined()
}

func (c *Canvas) Context() (gpu.Device, error) {
	if c.dev != nil {
		return c.dev, nil
	}
	if c.canvas.IsUndefined() {
		return nil, fmt.Errorf("web: canvas not attached")
	}
	attrs := map[string]any{
		"alpha":              true,
		"premultipliedAlpha": false,
		"antialias":          true,
		"depth":              true,
	}
	gl := c.canvas.Call("getContext", "webgl2", attrs)
	if gl.IsNull() || gl.IsUndefined() {
		return nil, fmt.Errorf("web: webgl2 context: %w", probe.ErrUnsupported)
	}
	c.dev = NewDevice(gl)
	return c.dev, nil
}

func (c *Canvas) CSSSize() (int, int) {
	win := js.Global().Get("window")
	return win.Get("innerWidth").Int(), win.Get("innerHeight").Int()
}

func (c *Canvas) PixelRatio() float64 {
	v := js.Global().Get("window").Get("devicePixelRatio")
	if v.Type() != js.TypeNumber {
		return 1
	}
	return v.Float()
}

func (c *Canvas) SetBackingSize(width, height int) {
	if c.canvas.IsUndefined() {
		return
	}
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)
}

// Element is the attached canvas, or undefined.
func (c *Canvas) Element() js.Value { return c.canvas }

var _ surface.Host = (*Canvas)(nil)
