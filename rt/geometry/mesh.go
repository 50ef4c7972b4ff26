// Package geometry builds the procedural meshes and draws the floating decorative
// objects with a simple lit shader.
package geometry

import "math"

// Stride is the number of floats per interleaved vertex: position, normal, uv.
const Stride = 8

const (
	MinSegments = 3
	// MaxSegments keeps (s+1)^2 vertices addressable by uint16 indices.
	MaxSegments = 254
)

// Mesh is CPU-side geometry: interleaved x y z nx ny nz u v vertices and triangle indices.
type Mesh struct {
	Vertices []float32
	Indices  []uint16
}

func (m Mesh) VertexCount() int { return len(m.Vertices) / Stride }

// Vertex returns the position and normal of vertex i.
func (m Mesh) Vertex(i int) (pos, normal [3]float32) {
	v := m.Vertices[i*Stride : (i+1)*Stride]
	return [3]float32{v[0], v[1], v[2]}, [3]float32{v[3], v[4], v[5]}
}

type face struct {
	normal  [3]float32
	corners [4][3]float32
	uvs     [4][2]float32
}

var cubeFaces = [6]face{
	{ // front
		normal:  [3]float32{0, 0, 1},
		corners: [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		uvs:     [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
	{ // back
		normal:  [3]float32{0, 0, -1},
		corners: [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}},
		uvs:     [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}},
	},
	{ // top
		normal:  [3]float32{0, 1, 0},
		corners: [4][3]float32{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
		uvs:     [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}},
	},
	{ // bottom
		normal:  [3]float32{0, -1, 0},
		corners: [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
		uvs:     [4][2]float32{{1, 1}, {0, 1}, {0, 0}, {1, 0}},
	},
	{ // right
		normal:  [3]float32{1, 0, 0},
		corners: [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},
		uvs:     [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}},
	},
	{ // left
		normal:  [3]float32{-1, 0, 0},
		corners: [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		uvs:     [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
}

// Cube is the 2x2x2 cube centred on the origin with per-face normals: 24 vertices, 36 indices.
func Cube() Mesh {
	m := Mesh{
		Vertices: make([]float32, 0, 24*Stride),
		Indices:  make([]uint16, 0, 36),
	}
	for f, fc := range cubeFaces {
		for c := 0; c < 4; c++ {
			p, uv := fc.corners[c], fc.uvs[c]
			m.Vertices = append(m.Vertices, p[0], p[1], p[2], fc.normal[0], fc.normal[1], fc.normal[2], uv[0], uv[1])
		}
		base := uint16(f * 4)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// ClampSegments limits a sphere tessellation to [MinSegments, MaxSegments].
func ClampSegments(segments int) int {
	return min(max(segments, MinSegments), MaxSegments)
}

// Sphere is a UV sphere: (s+1)^2 vertices and s*s*6 indices for s segments. Normals are
// the unit position, uv is (lon/s, lat/s).
func Sphere(radius float32, segments int) Mesh {
	s := ClampSegments(segments)
	m := Mesh{
		Vertices: make([]float32, 0, (s+1)*(s+1)*Stride),
		Indices:  make([]uint16, 0, s*s*6),
	}
	for lat := 0; lat <= s; lat++ {
		theta := float64(lat) * math.Pi / float64(s)
		sinT, cosT := math.Sincos(theta)
		for lon := 0; lon <= s; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(s)
			sinP, cosP := math.Sincos(phi)

			x := float32(cosP * sinT)
			y := float32(cosT)
			z := float32(sinP * sinT)
			m.Vertices = append(m.Vertices,
				x*radius, y*radius, z*radius,
				x, y, z,
				float32(lon)/float32(s), float32(lat)/float32(s),
			)
		}
	}
	for lat := 0; lat < s; lat++ {
		for lon := 0; lon < s; lon++ {
			first := uint16(lat*(s+1) + lon)
			second := first + uint16(s+1)
			m.Indices = append(m.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return m
}
