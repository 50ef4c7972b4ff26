package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockAdvance(t *testing.T) {
	var c Clock
	c.Advance(16 * time.Millisecond)
	c.Advance(16 * time.Millisecond)

	assert.Equal(t, 32*time.Millisecond, c.Elapsed)
	assert.Equal(t, uint64(2), c.Frames)
	assert.InDelta(t, 0.032, c.Seconds(), 1e-6)
	assert.InDelta(t, 0.016, c.DtSeconds(), 1e-6)
}

func TestClockMonotonic(t *testing.T) {
	var c Clock
	c.Advance(time.Second)
	c.Advance(-time.Second)
	if c.Elapsed != time.Second {
		t.Errorf("elapsed went backwards: %v", c.Elapsed)
	}
	assert.Equal(t, time.Duration(0), c.Dt)
}

func TestClockFPS(t *testing.T) {
	var c Clock
	assert.Zero(t, c.FPS())
	// 1/60s truncates to whole nanoseconds, so the window closes on the 31st frame
	for i := 0; i < 31; i++ {
		c.Advance(time.Second / 60)
	}
	assert.InDelta(t, 60, c.FPS(), 0.5)
}
