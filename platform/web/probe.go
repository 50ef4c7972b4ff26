//go:build js && wasm

package web

import (
	"fmt"
	"syscall/js"

	"github.com/gekko3d/backdrop/rt/probe"
)

// Probe reads capability hints from a throwaway WebGL2 context and the navigator.
type Probe struct{}

func (Probe) Hints() (probe.Hints, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return probe.Hints{}, fmt.Errorf("web: no document: %w", probe.ErrUnsupported)
	}
	canvas := doc.Call("createElement", "canvas")
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsNull() || gl.IsUndefined() {
		return probe.Hints{}, fmt.Errorf("web: webgl2 unavailable: %w", probe.ErrUnsupported)
	}
	defer func() {
		if ext := gl.Call("getExtension", "WEBGL_lose_context"); ext.Truthy() {
			ext.Call("loseContext")
		}
	}()

	nav := js.Global().Get("navigator")
	h := probe.Hints{
		MaxTextureSize: gl.Call("getParameter", gl.Get("MAX_TEXTURE_SIZE")).Int(),
		Renderer:       jsString(gl.Call("getParameter", gl.Get("RENDERER"))),
		Mobile:         probe.IsMobileUserAgent(jsString(nav.Get("userAgent"))),
	}
	if v := nav.Get("deviceMemory"); v.Type() == js.TypeNumber {
		h.DeviceMemoryGB = v.Float()
	}
	if v := nav.Get("hardwareConcurrency"); v.Type() == js.TypeNumber {
		h.Cores = v.Int()
	}
	if ext := gl.Call("getExtension", "WEBGL_debug_renderer_info"); ext.Truthy() {
		if name := jsString(gl.Call("getParameter", ext.Get("UNMASKED_RENDERER_WEBGL"))); name != "" {
			h.Renderer = name
		}
	}
	return h, nil
}

var _ probe.Source = Probe{}
