package backdrop

import (
	"math"
	"testing"

	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/stretchr/testify/assert"
)

func TestScrollProgress(t *testing.T) {
	tests := []struct {
		name                 string
		scrollY, docH, viewH float64
		want                 float32
	}{
		{"top", 0, 3000, 1000, 0},
		{"middle", 1000, 3000, 1000, 0.5},
		{"bottom", 2000, 3000, 1000, 1},
		{"overscroll", 2500, 3000, 1000, 1},
		{"rubber band", -40, 3000, 1000, 0},
		{"short page", 0, 800, 1000, 0},
		{"exact fit", 10, 1000, 1000, 0},
		{"nan", math.NaN(), 3000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScrollProgress(tt.scrollY, tt.docH, tt.viewH), 1e-6)
		})
	}
}

func TestWithScroll(t *testing.T) {
	base := Preset(probe.High)

	assert.Equal(t, base, base.WithScroll(0))

	full := base.WithScroll(1)
	assert.InDelta(t, base.BlurStrength+DefaultScrollBoost.Blur, full.BlurStrength, 1e-6)
	assert.InDelta(t, base.BloomIntensity+DefaultScrollBoost.Bloom, full.BloomIntensity, 1e-6)
	assert.InDelta(t, base.DistortionStrength+DefaultScrollBoost.Distortion, full.DistortionStrength, 1e-6)
	assert.Equal(t, base.ParticleCount, full.ParticleCount)

	assert.Equal(t, full, base.WithScroll(3), "progress is clamped")

	off := base
	off.BloomIntensity = 0
	assert.Zero(t, off.WithScroll(1).BloomIntensity, "a disabled pass stays disabled")

	noPost := base
	noPost.EnablePostProcessing = false
	assert.Equal(t, noPost, noPost.WithScroll(1))
}

func TestWithScrollMonotonic(t *testing.T) {
	base := Preset(probe.Medium)
	prev := base.WithScroll(0)
	for i := 1; i <= 20; i++ {
		cur := base.WithScroll(float32(i) / 20)
		if cur.BlurStrength < prev.BlurStrength || cur.BloomIntensity < prev.BloomIntensity ||
			cur.DistortionStrength < prev.DistortionStrength {
			t.Fatalf("step %d: effects decreased: %+v after %+v", i, cur, prev)
		}
		prev = cur
	}
}
