package geometry

import (
	"fmt"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	positionLocation = 0
	normalLocation   = 1
	texCoordLocation = 2
)

var (
	LightPosition = mgl32.Vec3{5, 5, 5}
	ViewPosition  = mgl32.Vec3{0, 0, 5}
)

// Geometry is an uploaded, immutable mesh.
type Geometry struct {
	vao        gpu.VertexArray
	vertices   gpu.Buffer
	indices    gpu.Buffer
	IndexCount int
}

type geometryKey struct {
	shape    Shape
	radius   float32
	segments int
}

type Renderer struct {
	dev    gpu.Device
	logger core.Logger

	program  gpu.Program
	uniforms gpu.Uniforms
	time     float32

	cache map[geometryKey]*Geometry
}

// NewRenderer builds the lit program. A build failure is logged and leaves the renderer
// inert: Ready reports false and rendering does nothing.
func NewRenderer(dev gpu.Device, logger core.Logger) *Renderer {
	r := &Renderer{
		dev:    dev,
		logger: core.OrNop(logger),
		cache:  make(map[geometryKey]*Geometry),
	}
	program, err := gpu.BuildProgram(dev, "geometry", shaders.GeometryVert, shaders.GeometryFrag)
	if err != nil {
		r.logger.Errorf("geometry program: %v", err)
		return r
	}
	r.program = program
	r.uniforms = gpu.LookupUniforms(dev, program,
		"u_modelViewMatrix", "u_projectionMatrix", "u_normalMatrix",
		"u_time", "u_lightPosition", "u_viewPosition")
	return r
}

func (r *Renderer) Ready() bool { return r.program != 0 }

// CreateCube returns the shared cube geometry, uploading it on first use.
func (r *Renderer) CreateCube() *Geometry {
	return r.geometry(geometryKey{shape: ShapeCube}, Cube)
}

// CreateSphere returns a cached sphere for (radius, segments), uploading it on first use.
func (r *Renderer) CreateSphere(radius float32, segments int) *Geometry {
	s := ClampSegments(segments)
	return r.geometry(geometryKey{shape: ShapeSphere, radius: radius, segments: s}, func() Mesh {
		return Sphere(radius, s)
	})
}

func (r *Renderer) geometry(key geometryKey, build func() Mesh) *Geometry {
	if g, ok := r.cache[key]; ok {
		return g
	}
	g := r.Upload(build())
	r.cache[key] = g
	r.logger.Debugf("geometry uploaded: %s r=%.2f segments=%d indices=%d", key.shape, key.radius, key.segments, g.IndexCount)
	return g
}

// Upload copies a mesh to the device. The caller owns the result unless it came from
// CreateCube or CreateSphere.
func (r *Renderer) Upload(m Mesh) *Geometry {
	g := &Geometry{IndexCount: len(m.Indices)}
	g.vao = r.dev.CreateVertexArray()
	r.dev.BindVertexArray(g.vao)

	g.vertices = r.dev.CreateBuffer()
	r.dev.BindBuffer(gpu.ArrayBuffer, g.vertices)
	r.dev.BufferDataFloat32(gpu.ArrayBuffer, m.Vertices, gpu.StaticDraw)

	g.indices = r.dev.CreateBuffer()
	r.dev.BindBuffer(gpu.ElementArrayBuffer, g.indices)
	r.dev.BufferDataUint16(gpu.ElementArrayBuffer, m.Indices, gpu.StaticDraw)

	const strideBytes = Stride * 4
	r.dev.EnableVertexAttribArray(positionLocation)
	r.dev.VertexAttribPointer(positionLocation, 3, strideBytes, 0)
	r.dev.EnableVertexAttribArray(normalLocation)
	r.dev.VertexAttribPointer(normalLocation, 3, strideBytes, 3*4)
	r.dev.EnableVertexAttribArray(texCoordLocation)
	r.dev.VertexAttribPointer(texCoordLocation, 2, strideBytes, 6*4)

	r.dev.BindVertexArray(0)
	return g
}

func (r *Renderer) ReleaseGeometry(g *Geometry) {
	if g == nil {
		return
	}
	r.dev.DeleteBuffer(g.vertices)
	r.dev.DeleteBuffer(g.indices)
	r.dev.DeleteVertexArray(g.vao)
}

// Update advances the renderer's own clock that drives the vertex wobble and palette.
func (r *Renderer) Update(dt float32) {
	r.time += dt
}

// Render draws g with one indexed triangle draw.
func (r *Renderer) Render(g *Geometry, modelView, projection mgl32.Mat4) {
	if r.program == 0 || g == nil {
		return
	}
	u := r.uniforms
	r.dev.UseProgram(r.program)
	r.dev.UniformMatrix4fv(u.Get("u_modelViewMatrix"), modelView)
	r.dev.UniformMatrix4fv(u.Get("u_projectionMatrix"), projection)
	r.dev.UniformMatrix4fv(u.Get("u_normalMatrix"), NormalMatrix(modelView))
	r.dev.Uniform1f(u.Get("u_time"), r.time)
	r.dev.Uniform3f(u.Get("u_lightPosition"), LightPosition[0], LightPosition[1], LightPosition[2])
	r.dev.Uniform3f(u.Get("u_viewPosition"), ViewPosition[0], ViewPosition[1], ViewPosition[2])

	r.dev.BindVertexArray(g.vao)
	r.dev.DrawElements(gpu.Triangles, g.IndexCount)
	r.dev.BindVertexArray(0)
}

// DrawScene renders Layout(t) with a projection for the given aspect ratio.
func (r *Renderer) DrawScene(t, aspect float32) {
	if r.program == 0 {
		return
	}
	projection := Projection(aspect)
	for _, p := range Layout(t) {
		var g *Geometry
		switch p.Shape {
		case ShapeCube:
			g = r.CreateCube()
		case ShapeSphere:
			g = r.CreateSphere(SphereRadius, SphereSegments)
		default:
			panic(fmt.Sprintf("geometry: unknown shape %d", p.Shape))
		}
		r.Render(g, p.ModelView, projection)
	}
}

// Release frees the program and every cached geometry.
func (r *Renderer) Release() {
	if r.dev == nil {
		return
	}
	for k, g := range r.cache {
		r.ReleaseGeometry(g)
		delete(r.cache, k)
	}
	if r.program != 0 {
		r.dev.DeleteProgram(r.program)
		r.program = 0
	}
	r.dev = nil
}
