package backdrop

import (
	"strings"
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamRangeNudge(t *testing.T) {
	blur := ParamBlur.Range()
	assert.InDelta(t, 0.6, blur.nudge(0.5, 1), 1e-9)
	assert.InDelta(t, 0.4, blur.nudge(0.5, -1), 1e-9)
	assert.InDelta(t, 2, blur.nudge(1.95, 1), 1e-9)
	assert.InDelta(t, 0, blur.nudge(0.05, -3), 1e-9)

	particles := ParamParticles.Range()
	assert.Equal(t, 3000.0, particles.nudge(3000, 1))
	assert.Equal(t, 100.0, particles.nudge(150, -1))
	assert.Equal(t, "distortion", ParamDistortion.String())
}

func TestDebugKeys(t *testing.T) {
	s, dev, _ := newTestSystem(t, Options{})

	s.OnKey("ArrowUp")
	assert.Equal(t, 2000, s.BaseSettings().ParticleCount, "arrows are ignored while hidden")

	s.OnKey("d")
	require.True(t, s.DebugPanel().Visible())
	assert.Equal(t, ParamParticles, s.DebugPanel().Selected())

	s.OnKey("ArrowUp")
	assert.Equal(t, 2100, s.BaseSettings().ParticleCount)

	s.OnKey("Tab")
	assert.Equal(t, ParamBlur, s.DebugPanel().Selected())
	s.OnKey("ArrowDown")
	s.OnKey("ArrowDown")
	assert.InDelta(t, 0.3, s.BaseSettings().BlurStrength, 1e-6)

	for i := 0; i < 10; i++ {
		s.OnKey("ArrowDown")
	}
	assert.Zero(t, s.BaseSettings().BlurStrength)

	s.OnKey("R")
	assert.Equal(t, s.preset, s.BaseSettings())

	assert.Equal(t, ParamBlur, s.DebugPanel().Selected(), "reset keeps the selection")
	s.OnKey("Tab")
	s.OnKey("Tab")
	assert.Equal(t, ParamDistortion, s.DebugPanel().Selected())
	s.OnKey("Tab")
	assert.Equal(t, ParamParticles, s.DebugPanel().Selected(), "selection wraps")

	s.OnKey("p")
	assert.False(t, s.BaseSettings().EnableParticles)
	s.OnKey("P")
	assert.True(t, s.BaseSettings().EnableParticles)

	dev.ResetLog()
	s.Tick(0)
	last := dev.Draws[len(dev.Draws)-1]
	assert.Equal(t, gpu.Framebuffer(0), last.Framebuffer)
	assert.True(t, last.Blend, "overlay is blended over the frame")
	require.NotNil(t, s.hud)

	s.OnKey("D")
	assert.False(t, s.DebugPanel().Visible())
	dev.ResetLog()
	s.Tick(0)
	assert.False(t, dev.Draws[len(dev.Draws)-1].Blend, "final blit draws without blending")
}

func TestDebugLines(t *testing.T) {
	s, _, _ := newTestSystem(t, Options{})
	s.OnScroll(2000, 3000, 1000)

	lines := s.DebugPanel().Lines(s)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Backdrop Debug", lines[0])
	assert.Contains(t, lines[1], "tier high")

	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "> particles")
	assert.Contains(t, text, "2000")
	assert.Contains(t, text, "blur       0.5 (1.00)")
	assert.Contains(t, text, "particles on  geometry on  post on")
}
