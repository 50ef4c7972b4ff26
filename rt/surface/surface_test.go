package surface

import (
	"errors"
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	dev        *gputest.Recorder
	ctxErr     error
	cssW, cssH int
	dpr        float64

	attaches, detaches int
	backingW, backingH int
}

func (h *fakeHost) Attach() error { h.attaches++; return nil }
func (h *fakeHost) Detach()       { h.detaches++ }
func (h *fakeHost) Context() (gpu.Device, error) {
	if h.ctxErr != nil {
		return nil, h.ctxErr
	}
	return h.dev, nil
}
func (h *fakeHost) CSSSize() (int, int)      { return h.cssW, h.cssH }
func (h *fakeHost) PixelRatio() float64      { return h.dpr }
func (h *fakeHost) SetBackingSize(w, hh int) { h.backingW, h.backingH = w, hh }

func TestDeviceSize(t *testing.T) {
	tests := []struct {
		cssW, cssH int
		dpr        float64
		w, h       int
	}{
		{800, 600, 3.0, 1600, 1200},
		{800, 600, 0.5, 800, 600},
		{333, 100, 1.5, 500, 150},
		{0, 0, 2, 1, 1},
		{1280, 720, 1.25, 1600, 900},
	}
	for _, tt := range tests {
		w, h := DeviceSize(tt.cssW, tt.cssH, tt.dpr)
		if w != tt.w || h != tt.h {
			t.Errorf("DeviceSize(%d, %d, %v) = %dx%d, want %dx%d", tt.cssW, tt.cssH, tt.dpr, w, h, tt.w, tt.h)
		}
	}
}

func TestManagerCreateAndResize(t *testing.T) {
	host := &fakeHost{dev: gputest.NewRecorder(), cssW: 800, cssH: 600, dpr: 3.0}
	m := New(host, nil)

	dev, err := m.Create()
	require.NoError(t, err)
	assert.Same(t, host.dev, dev)

	w, h := m.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)
	assert.Equal(t, 2.0, m.PixelRatio())
	assert.Equal(t, [4]int{0, 0, 1600, 1200}, host.dev.ViewportRect)
	assert.Equal(t, 1600, host.backingW)

	host.dpr = 1
	w, h = m.Resize(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, [4]int{0, 0, 1024, 768}, host.dev.ViewportRect)
}

func TestManagerContextFailureDetaches(t *testing.T) {
	errNoGL := errors.New("no webgl2")
	host := &fakeHost{ctxErr: errNoGL, cssW: 10, cssH: 10, dpr: 1}
	m := New(host, nil)

	_, err := m.Create()
	assert.ErrorIs(t, err, errNoGL)
	assert.Equal(t, 1, host.detaches)
	assert.Nil(t, m.Device())
}

func TestManagerDestroyIdempotent(t *testing.T) {
	host := &fakeHost{dev: gputest.NewRecorder(), cssW: 10, cssH: 10, dpr: 1}
	m := New(host, nil)
	_, err := m.Create()
	require.NoError(t, err)

	m.Destroy()
	m.Destroy()
	assert.Equal(t, 1, host.detaches)

	_, err = m.Create()
	assert.Error(t, err)
}
