//go:build js && wasm

package web

import (
	"syscall/js"
	"time"
)

// AnimationFrames schedules callbacks with window.requestAnimationFrame. One JS function
// is kept for the lifetime of the scheduler and released by Release.
type AnimationFrames struct {
	cb      js.Func
	queue   []func(now time.Duration)
	id      js.Value
	armed   bool
	stopped bool
}

func NewAnimationFrames() *AnimationFrames {
	a := &AnimationFrames{}
	a.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		a.armed = false
		var now time.Duration
		if len(args) > 0 {
			now = time.Duration(args[0].Float() * float64(time.Millisecond))
		}
		fns := a.queue
		a.queue = nil
		for _, fn := range fns {
			fn(now)
		}
		return nil
	})
	return a
}

func (a *AnimationFrames) RequestFrame(fn func(now time.Duration)) {
	if a.stopped {
		return
	}
	a.queue = append(a.queue, fn)
	if !a.armed {
		a.armed = true
		a.id = js.Global().Call("requestAnimationFrame", a.cb)
	}
}

// Release cancels the pending frame and frees the callback.
func (a *AnimationFrames) Release() {
	if a.stopped {
		return
	}
	a.stopped = true
	if a.armed {
		js.Global().Call("cancelAnimationFrame", a.id)
		a.armed = false
	}
	a.queue = nil
	a.cb.Release()
}
