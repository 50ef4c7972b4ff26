package particles

import (
	"math/rand"
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, dev *gputest.Recorder, count int) *Engine {
	t.Helper()
	e, err := New(dev, nil, Config{Count: count, Width: 800, Height: 600, Rand: rand.New(rand.NewSource(7))})
	require.NoError(t, err)
	return e
}

func TestEngineDrawsAllParticlesInOneCall(t *testing.T) {
	dev := gputest.NewRecorder()
	e := newTestEngine(t, dev, 1000)
	require.True(t, e.Ready())

	e.Draw(0.5)
	points := dev.DrawsWith(gpu.Points)
	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].First)
	assert.Equal(t, 1000, points[0].Count)

	v, ok := dev.Uniform(points[0].Program, "u_time")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5}, v)
	v, _ = dev.Uniform(points[0].Program, "u_resolution")
	assert.Equal(t, []float32{800, 600}, v)
}

func TestEngineSetCountReallocatesOnNextDraw(t *testing.T) {
	dev := gputest.NewRecorder()
	e := newTestEngine(t, dev, 1000)
	e.Draw(0)
	uploads := dev.Count("BufferData")
	assert.Equal(t, 4, uploads)

	e.Draw(0.1)
	assert.Equal(t, uploads, dev.Count("BufferData"), "no upload without a count change")

	e.SetCount(500)
	assert.Equal(t, 500, e.Count())
	dev.ResetLog()
	e.Draw(0.2)

	assert.Equal(t, 4, dev.Count("BufferData"))
	for i, want := range []int{1000, 1000, 500, 500} {
		if got := len(dev.Floats[e.buffers[i]]); got != want {
			t.Errorf("buffer %d holds %d floats, want %d", i, got, want)
		}
	}
	points := dev.DrawsWith(gpu.Points)
	require.Len(t, points, 1)
	assert.Equal(t, 500, points[0].Count)
}

func TestEnginePointer(t *testing.T) {
	dev := gputest.NewRecorder()
	e := newTestEngine(t, dev, 10)
	e.SetPointer(300, 200)
	e.Draw(0)

	v, ok := dev.Uniform(dev.Draws[0].Program, "u_mouse")
	require.True(t, ok)
	assert.Equal(t, []float32{300, 200}, v)
}

func TestEngineZeroCountDrawsNothing(t *testing.T) {
	dev := gputest.NewRecorder()
	e := newTestEngine(t, dev, 0)
	e.Draw(0)
	assert.Empty(t, dev.Draws)
}

func TestEngineShaderFailureIsInert(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailShaders = []string{"a_velocity"}

	e := newTestEngine(t, dev, 100)
	assert.False(t, e.Ready())
	e.SetCount(200)
	e.Draw(1)
	assert.Empty(t, dev.Draws)
	e.Release()
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}

func TestEngineRelease(t *testing.T) {
	dev := gputest.NewRecorder()
	e := newTestEngine(t, dev, 100)
	e.Draw(0)
	e.Release()
	e.Release()
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())

	dev.ResetLog()
	e.Draw(1)
	assert.Empty(t, dev.Draws)
}
