package geometry

import (
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererCachesGeometry(t *testing.T) {
	dev := gputest.NewRecorder()
	r := NewRenderer(dev, nil)
	require.True(t, r.Ready())

	a := r.CreateSphere(0.5, 16)
	b := r.CreateSphere(0.5, 16)
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.CreateSphere(1, 16))
	assert.Same(t, r.CreateCube(), r.CreateCube())

	// 3 geometries, two buffers each
	assert.Equal(t, 6, dev.Live("buffer"))
}

func TestRendererUploadsInterleavedMesh(t *testing.T) {
	dev := gputest.NewRecorder()
	r := NewRenderer(dev, nil)

	g := r.CreateSphere(1, 8)
	assert.Equal(t, 384, g.IndexCount)
	assert.Len(t, dev.Floats[g.vertices], 81*Stride)
	assert.Len(t, dev.Indices[g.indices], 384)
}

func TestRendererRenderSetsUniforms(t *testing.T) {
	dev := gputest.NewRecorder()
	r := NewRenderer(dev, nil)
	r.Update(0.25)
	r.Update(0.25)

	mv := ModelView(1, 2, -5, 0.1, 0.2)
	r.Render(r.CreateCube(), mv, Projection(1))

	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.Equal(t, gpu.Triangles, d.Mode)
	assert.Equal(t, 36, d.Count)

	v, _ := dev.Uniform(d.Program, "u_time")
	assert.Equal(t, []float32{0.5}, v)
	v, _ = dev.Uniform(d.Program, "u_lightPosition")
	assert.Equal(t, []float32{5, 5, 5}, v)
	v, _ = dev.Uniform(d.Program, "u_viewPosition")
	assert.Equal(t, []float32{0, 0, 5}, v)
	v, _ = dev.Uniform(d.Program, "u_modelViewMatrix")
	assert.Equal(t, mv[:], v)
	v, _ = dev.Uniform(d.Program, "u_normalMatrix")
	n := NormalMatrix(mv)
	assert.Equal(t, n[:], v)
}

func TestRendererDrawScene(t *testing.T) {
	dev := gputest.NewRecorder()
	r := NewRenderer(dev, nil)

	r.DrawScene(2, 16.0/9.0)
	draws := dev.DrawsWith(gpu.Triangles)
	require.Len(t, draws, SceneCubes+SceneSpheres)
	for i, d := range draws {
		want := 36
		if i >= SceneCubes {
			want = SphereSegments * SphereSegments * 6
		}
		assert.Equal(t, want, d.Count, "draw %d", i)
	}

	// second frame reuses the cached geometry
	before := dev.Count("CreateBuffer")
	r.DrawScene(2.1, 16.0/9.0)
	assert.Equal(t, before, dev.Count("CreateBuffer"))
}

func TestRendererShaderFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailShaders = []string{"u_normalMatrix"}

	r := NewRenderer(dev, nil)
	assert.False(t, r.Ready())
	r.DrawScene(1, 1)
	r.Render(&Geometry{IndexCount: 3}, mgl32.Ident4(), mgl32.Ident4())
	assert.Empty(t, dev.Draws)
}

func TestRendererRelease(t *testing.T) {
	dev := gputest.NewRecorder()
	r := NewRenderer(dev, nil)
	r.DrawScene(0, 1)
	r.Release()
	r.Release()
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}
