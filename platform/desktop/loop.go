//go:build !js

package desktop

import (
	"time"

	"github.com/gekko3d/backdrop"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Loop is a backdrop.Scheduler that runs requested frames from the GLFW event loop and
// presents after each one.
type Loop struct {
	window *glfw.Window
	start  time.Time
	queue  []func(now time.Duration)
}

func NewLoop(window *glfw.Window) *Loop {
	return &Loop{window: window, start: time.Now()}
}

func (l *Loop) RequestFrame(fn func(now time.Duration)) {
	l.queue = append(l.queue, fn)
}

// Run processes events and frames until the window is asked to close.
func (l *Loop) Run() {
	for !l.window.ShouldClose() {
		if len(l.queue) == 0 {
			// Stopped: nothing to draw, so block for input instead of spinning.
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		glfw.PollEvents()
		fns := l.queue
		l.queue = nil
		now := time.Since(l.start)
		for _, fn := range fns {
			fn(now)
		}
		l.window.SwapBuffers()
	}
}

var _ backdrop.Scheduler = (*Loop)(nil)

// scrollPages is the height of the virtual page the mouse wheel scrolls through, in
// window heights.
const scrollPages = 3

// wheelStep is the virtual scroll distance of one wheel notch in screen coordinates.
const wheelStep = 80

// wheelScroll applies one wheel event to a virtual page scrollPages windows tall and
// returns the new offset with the page and viewport heights.
func wheelScroll(scrollY, yoff float64, windowHeight int) (y, doc, view float64) {
	view = float64(windowHeight)
	doc = view * scrollPages
	y = min(max(scrollY-yoff*wheelStep, 0), doc-view)
	return y, doc, view
}

// Bind forwards window input to sys. The wheel scrolls a virtual page so scroll
// coupling can be previewed.
func Bind(window *glfw.Window, sys *backdrop.System) {
	var scrollY float64

	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		sys.OnResize(width, height)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		sys.OnPointer(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, _, yoff float64) {
		_, h := w.GetSize()
		var doc, view float64
		scrollY, doc, view = wheelScroll(scrollY, yoff, h)
		sys.OnScroll(scrollY, doc, view)
	})
	window.SetCharCallback(func(_ *glfw.Window, r rune) {
		switch r {
		case 'd', 'D', 'p', 'P', 'r', 'R':
			sys.OnKey(string(r))
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyTab:
			sys.OnKey("Tab")
		case glfw.KeyUp:
			sys.OnKey("ArrowUp")
		case glfw.KeyDown:
			sys.OnKey("ArrowDown")
		case glfw.KeySpace:
			if action != glfw.Press {
				return
			}
			if sys.State() == backdrop.StateRunning {
				sys.Stop()
			} else {
				sys.Start()
			}
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})
}
