package geometry

import "github.com/go-gl/mathgl/mgl32"

const (
	FieldOfView = 45.0
	Near        = 0.1
	Far         = 100.0
)

// ModelView places an object at (x, y, z) rotated by rotX then rotY (radians): T * Rx * Ry.
func ModelView(x, y, z, rotX, rotY float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z).
		Mul4(mgl32.HomogRotate3DX(rotX)).
		Mul4(mgl32.HomogRotate3DY(rotY))
}

// NormalMatrix keeps only the rotation part of mv. This equals the inverse transpose
// as long as the model view carries no non-uniform scale, which holds for every
// transform built by ModelView.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat4 {
	n := mgl32.Ident4()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			n.Set(row, col, mv.At(row, col))
		}
	}
	return n
}

// Projection is the fixed 45 degree perspective used for every object.
func Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, Near, Far)
}
