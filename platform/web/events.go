//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/gekko3d/backdrop"
)

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Events forwards DOM input to a System. Release removes every listener.
type Events struct {
	listeners []listener
	// hidden records a Stop issued because the page was hidden, so that only such a
	// stop is undone when it becomes visible again.
	hidden bool
}

// Bind listens for resize, pointer, touch, scroll, key and visibility events on the
// window and document and feeds them to sys.
func Bind(sys *backdrop.System) *Events {
	win := js.Global().Get("window")
	doc := js.Global().Get("document")
	e := &Events{}

	e.on(win, "resize", func(js.Value) {
		sys.OnResize(win.Get("innerWidth").Int(), win.Get("innerHeight").Int())
	})
	e.on(doc, "pointermove", func(ev js.Value) {
		sys.OnPointer(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	})
	e.on(doc, "touchmove", func(ev js.Value) {
		touches := ev.Get("touches")
		if touches.Get("length").Int() == 0 {
			return
		}
		t := touches.Index(0)
		sys.OnPointer(t.Get("clientX").Float(), t.Get("clientY").Float())
	})
	e.on(win, "scroll", func(js.Value) {
		sys.OnScroll(
			win.Get("scrollY").Float(),
			doc.Get("documentElement").Get("scrollHeight").Float(),
			win.Get("innerHeight").Float(),
		)
	})
	e.on(doc, "keydown", func(ev js.Value) {
		if isEditable(ev.Get("target")) {
			return
		}
		sys.OnKey(ev.Get("key").String())
	})
	e.on(doc, "visibilitychange", func(js.Value) {
		switch {
		case doc.Get("hidden").Bool() && sys.State() == backdrop.StateRunning:
			sys.Stop()
			e.hidden = true
		case !doc.Get("hidden").Bool() && e.hidden:
			e.hidden = false
			sys.Start()
		}
	})
	return e
}

func (e *Events) on(target js.Value, event string, handle func(ev js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		handle(ev)
		return nil
	})
	target.Call("addEventListener", event, fn, map[string]any{"passive": true})
	e.listeners = append(e.listeners, listener{target: target, event: event, fn: fn})
}

// isEditable keeps typing in form fields from reaching the debug keys.
func isEditable(el js.Value) bool {
	if el.IsUndefined() || el.IsNull() {
		return false
	}
	if el.Get("isContentEditable").Truthy() {
		return true
	}
	switch el.Get("tagName").String() {
	case "INPUT", "TEXTAREA", "SELECT":
		return true
	}
	return false
}

func (e *Events) Release() {
	for _, l := range e.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	e.listeners = nil
}
