package particles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRanges(t *testing.T) {
	const n = 2000
	p := Seed(rand.New(rand.NewSource(1)), n, 800, 600)
	require.Equal(t, n, p.Len())
	require.Len(t, p.Positions, 2*n)
	require.Len(t, p.Velocities, 2*n)

	for i := 0; i < n; i++ {
		x, y := p.Positions[2*i], p.Positions[2*i+1]
		if x < 0 || x >= 800 || y < 0 || y >= 600 {
			t.Fatalf("particle %d position (%v, %v) outside surface", i, x, y)
		}
		speed := math.Hypot(float64(p.Velocities[2*i]), float64(p.Velocities[2*i+1]))
		if speed < MinSpeed-1e-3 || speed >= MaxSpeed+1e-3 {
			t.Fatalf("particle %d speed %v outside [10, 60)", i, speed)
		}
		if p.Sizes[i] < MinSize || p.Sizes[i] >= MaxSize {
			t.Fatalf("particle %d size %v outside [2, 6)", i, p.Sizes[i])
		}
		if p.Lives[i] < 0 || p.Lives[i] >= 1 {
			t.Fatalf("particle %d life %v outside [0, 1)", i, p.Lives[i])
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	a := Seed(rand.New(rand.NewSource(42)), 10, 100, 100)
	b := Seed(rand.New(rand.NewSource(42)), 10, 100, 100)
	assert.Equal(t, a, b)

	empty := Seed(rand.New(rand.NewSource(42)), -3, 100, 100)
	assert.Equal(t, 0, empty.Len())
}

func TestPositionAtWrapsIntoViewport(t *testing.T) {
	p := Particles{
		Positions:  []float32{790, 10},
		Velocities: []float32{50, -50},
		Sizes:      []float32{4},
		Lives:      []float32{0.5},
	}
	res := mgl32.Vec2{800, 600}
	far := mgl32.Vec2{-10000, -10000}

	for _, tt := range []float32{0, 1, 10, 1000} {
		pos := p.PositionAt(0, tt, res, far)
		if pos[0] < 0 || pos[0] >= res[0] || pos[1] < 0 || pos[1] >= res[1] {
			t.Errorf("t=%v: position %v escaped the viewport", tt, pos)
		}
	}
	pos := p.PositionAt(0, 1, res, far)
	assert.InDelta(t, 40, pos[0], 1e-3)
	assert.InDelta(t, 560, pos[1], 1e-3)
}

func TestPositionAtPointerPull(t *testing.T) {
	p := Particles{
		Positions:  []float32{100, 100},
		Velocities: []float32{0, 0},
		Sizes:      []float32{4},
		Lives:      []float32{0},
	}
	res := mgl32.Vec2{800, 600}

	// 100px away: pulled (200-100)*0.1 = 10px towards the pointer
	pos := p.PositionAt(0, 0, res, mgl32.Vec2{200, 100})
	assert.InDelta(t, 110, pos[0], 1e-4)
	assert.InDelta(t, 100, pos[1], 1e-4)

	// outside the radius: untouched
	pos = p.PositionAt(0, 0, res, mgl32.Vec2{400, 100})
	assert.InDelta(t, 100, pos[0], 1e-4)
}

func TestPointSizeShrinksWithLife(t *testing.T) {
	p := Particles{Sizes: []float32{4, 4}, Lives: []float32{0, 0.75}}
	assert.Equal(t, float32(4), p.PointSize(0))
	assert.Equal(t, float32(1), p.PointSize(1))
}
