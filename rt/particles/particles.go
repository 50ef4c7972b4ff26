// Package particles draws the 2D point field. Motion is evaluated entirely in the
// vertex shader from seeded attributes; the CPU only uploads them when the count changes.
package particles

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinSpeed = 10.0
	MaxSpeed = 60.0
	MinSize  = 2.0
	MaxSize  = 6.0

	// PointerRadius and PointerPull mirror the constants baked into the vertex shader.
	PointerRadius = 200.0
	PointerPull   = 0.1
)

// Particles is the seeded attribute set, one entry per particle (two floats for the
// vector attributes). Life is a per-particle phase in [0,1) and is never reseeded.
type Particles struct {
	Positions  []float32
	Velocities []float32
	Sizes      []float32
	Lives      []float32
}

func (p Particles) Len() int { return len(p.Sizes) }

// Seed creates n particles spread uniformly over a width x height area moving in a
// random direction at 10..60 px/s.
func Seed(rng *rand.Rand, n int, width, height float32) Particles {
	if n < 0 {
		n = 0
	}
	p := Particles{
		Positions:  make([]float32, 2*n),
		Velocities: make([]float32, 2*n),
		Sizes:      make([]float32, n),
		Lives:      make([]float32, n),
	}
	for i := 0; i < n; i++ {
		p.Positions[2*i] = rng.Float32() * width
		p.Positions[2*i+1] = rng.Float32() * height

		angle := rng.Float64() * 2 * math.Pi
		speed := MinSpeed + rng.Float64()*(MaxSpeed-MinSpeed)
		p.Velocities[2*i] = float32(math.Cos(angle) * speed)
		p.Velocities[2*i+1] = float32(math.Sin(angle) * speed)

		p.Sizes[i] = MinSize + rng.Float32()*(MaxSize-MinSize)
		p.Lives[i] = rng.Float32()
	}
	return p
}

// PositionAt evaluates the shader's motion for particle i at time t (seconds): linear
// drift, wrap into the viewport, then the pull towards the pointer.
func (p Particles) PositionAt(i int, t float32, resolution, pointer mgl32.Vec2) mgl32.Vec2 {
	pos := mgl32.Vec2{
		p.Positions[2*i] + p.Velocities[2*i]*t,
		p.Positions[2*i+1] + p.Velocities[2*i+1]*t,
	}
	pos = mgl32.Vec2{wrap(pos[0], resolution[0]), wrap(pos[1], resolution[1])}

	toPointer := pointer.Sub(pos)
	if d := toPointer.Len(); d > 0 && d < PointerRadius {
		pos = pos.Add(toPointer.Normalize().Mul((PointerRadius - d) * PointerPull))
	}
	return pos
}

// PointSize is the rendered diameter: it shrinks as life approaches 1.
func (p Particles) PointSize(i int) float32 {
	return p.Sizes[i] * (1 - p.Lives[i])
}

// wrap matches GLSL mod(): x - m*floor(x/m), always in [0, m).
func wrap(x, m float32) float32 {
	if m <= 0 {
		return x
	}
	return x - m*float32(math.Floor(float64(x/m)))
}
