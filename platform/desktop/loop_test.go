//go:build !js

package desktop

import (
	"testing"

	"github.com/gekko3d/backdrop"
	"github.com/stretchr/testify/assert"
)

func TestWheelScroll(t *testing.T) {
	y, doc, view := wheelScroll(0, -1, 600)
	assert.Equal(t, float64(wheelStep), y)
	assert.Equal(t, 1800.0, doc)
	assert.Equal(t, 600.0, view)

	y, _, _ = wheelScroll(y, 5, 600)
	assert.Zero(t, y, "cannot scroll above the top")

	y, _, _ = wheelScroll(0, -100, 600)
	assert.Equal(t, 1200.0, y, "cannot scroll past the bottom")
	assert.Equal(t, float32(1), backdrop.ScrollProgress(y, doc, view))
}
