package web

import (
	"testing"

	"github.com/gekko3d/backdrop"
	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeardownRunsOnce(t *testing.T) {
	var order []string
	var td Teardown
	td.Add(func() { order = append(order, "system") })
	td.Add(func() { order = append(order, "frames") })

	td.Run()
	assert.NotPanics(t, td.Run)
	assert.Equal(t, []string{"system", "frames"}, order)
	assert.True(t, td.Done())

	assert.False(t, td.Add(func() { order = append(order, "late") }))
	td.Run()
	assert.Len(t, order, 2)
}

func TestDestroyTwiceThroughTeardown(t *testing.T) {
	unsupported := probe.SourceFunc(func() (probe.Hints, error) { return probe.Hints{}, probe.ErrUnsupported })
	sys := backdrop.New(backdrop.Options{Probe: unsupported, Logger: backdrop.NewNopLogger()})
	require.Error(t, sys.Init())

	var td Teardown
	td.Add(sys.Destroy)

	assert.NotPanics(t, func() {
		td.Run()
		td.Run()
		sys.Stop()
		sys.Start()
	})
	assert.Equal(t, backdrop.StateDestroyed, sys.State())
	assert.ErrorIs(t, sys.SetBlurStrength(1), backdrop.ErrNotRunning)
}
