package core

import "time"

// Clock accumulates elapsed frame time. It is advanced once per frame and read by every
// component for animation phase.
type Clock struct {
	Elapsed time.Duration
	Dt      time.Duration
	Frames  uint64

	fpsWindow time.Duration
	fpsFrames int
	fps       float64
}

const fpsWindow = 500 * time.Millisecond

// Advance moves the clock forward by dt. Negative deltas are treated as zero so the
// clock stays monotonic when the host timer jumps backwards.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.Dt = dt
	c.Elapsed += dt
	c.Frames++

	c.fpsWindow += dt
	c.fpsFrames++
	if c.fpsWindow >= fpsWindow {
		c.fps = float64(c.fpsFrames) / c.fpsWindow.Seconds()
		c.fpsWindow = 0
		c.fpsFrames = 0
	}
}

// Seconds is the elapsed time as shader-friendly float seconds.
func (c *Clock) Seconds() float32 {
	return float32(c.Elapsed.Seconds())
}

func (c *Clock) DtSeconds() float32 {
	return float32(c.Dt.Seconds())
}

// FPS is the frame rate measured over the last completed half-second window.
func (c *Clock) FPS() float64 {
	return c.fps
}
