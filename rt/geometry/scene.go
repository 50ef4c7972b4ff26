package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Shape int

const (
	ShapeCube Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	if s == ShapeCube {
		return "cube"
	}
	return "sphere"
}

const (
	SceneCubes     = 5
	SceneSpheres   = 3
	SphereRadius   = 0.5
	SphereSegments = 16
)

// Placement is one object of the decorative scene at a point in time.
type Placement struct {
	Shape     Shape
	ModelView mgl32.Mat4
	Depth     float32
}

// Layout returns the animated scene at t seconds: five cubes orbiting at depths
// -5, -7, ... and three spheres further back at -8, -11, -14.
func Layout(t float32) []Placement {
	out := make([]Placement, 0, SceneCubes+SceneSpheres)
	for i := 0; i < SceneCubes; i++ {
		fi := float32(i)
		z := -5 - 2*fi
		out = append(out, Placement{
			Shape: ShapeCube,
			Depth: z,
			ModelView: ModelView(
				sin(t+fi)*3,
				cos(t+fi*0.5)*2,
				z,
				t+fi,
				2*t+fi,
			),
		})
	}
	for i := 0; i < SceneSpheres; i++ {
		fi := float32(i)
		z := -8 - 3*fi
		out = append(out, Placement{
			Shape: ShapeSphere,
			Depth: z,
			ModelView: ModelView(
				cos(t+fi)*4,
				sin(t+fi*0.7)*3,
				z,
				0,
				t+fi*0.5,
			),
		})
	}
	return out
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos(x float32) float32 { return float32(math.Cos(float64(x))) }
