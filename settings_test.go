package backdrop

import (
	"math"
	"testing"

	"github.com/gekko3d/backdrop/rt/postfx"
	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		tier       probe.Tier
		particles  int
		geometry   bool
		post       bool
		blur       float32
		bloom      float32
		distortion float32
	}{
		{probe.Low, 500, false, false, 0, 0, 0},
		{probe.Medium, 1000, true, true, 0.3, 1.0, 0.2},
		{probe.High, 2000, true, true, 0.5, 1.2, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			s := Preset(tt.tier)
			assert.True(t, s.EnableParticles, "particles are on in every tier")
			assert.Equal(t, tt.particles, s.ParticleCount)
			assert.Equal(t, tt.geometry, s.EnableGeometry)
			assert.Equal(t, tt.post, s.EnablePostProcessing)
			assert.Equal(t, tt.blur, s.BlurStrength)
			assert.Equal(t, tt.bloom, s.BloomIntensity)
			assert.Equal(t, tt.distortion, s.DistortionStrength)
			assert.Equal(t, float32(0.8), s.BloomThreshold)
			require.NoError(t, s.Validate())
		})
	}
}

func TestValidate(t *testing.T) {
	nan := float32(math.NaN())
	mutations := map[string]func(*Settings){
		"zero particles":     func(s *Settings) { s.ParticleCount = 0 },
		"too many particles": func(s *Settings) { s.ParticleCount = MaxParticles + 1 },
		"negative blur":      func(s *Settings) { s.BlurStrength = -0.1 },
		"nan bloom":          func(s *Settings) { s.BloomIntensity = nan },
		"inf distortion":     func(s *Settings) { s.DistortionStrength = float32(math.Inf(1)) },
		"negative boost":     func(s *Settings) { s.ScrollBoost.Bloom = -1 },
	}
	for name, mutate := range mutations {
		s := Preset(probe.High)
		mutate(&s)
		assert.ErrorIs(t, s.Validate(), ErrInvalidSetting, name)
	}
}

func TestParseSettings(t *testing.T) {
	base := Preset(probe.Medium)

	s, err := ParseSettings([]byte(`{"particle_count": 1500, "bloom_mode": "composite", "scroll_boost": {"blur": 1}}`), base)
	require.NoError(t, err)
	assert.Equal(t, 1500, s.ParticleCount)
	assert.Equal(t, postfx.BloomComposite, s.BloomMode)
	assert.Equal(t, float32(1), s.ScrollBoost.Blur)
	assert.Equal(t, base.BlurStrength, s.BlurStrength, "absent fields keep the base value")
	assert.Equal(t, base.ScrollBoost.Bloom, s.ScrollBoost.Bloom, "nested objects merge field by field")

	_, err = ParseSettings([]byte(`{"blur_strength": -2}`), base)
	assert.ErrorIs(t, err, ErrInvalidSetting)

	_, err = ParseSettings([]byte(`{"bloom_mode": "soft"}`), base)
	assert.Error(t, err)

	got, err := ParseSettings([]byte(`{not json`), base)
	assert.Error(t, err)
	assert.Equal(t, base, got, "base is returned on error")
}

func TestSettingsJSONRoundTrip(t *testing.T) {
	s := Preset(probe.High)
	s.BloomMode = postfx.BloomComposite
	data, err := s.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bloom_mode":"composite"`)

	back, err := ParseSettings(data, Preset(probe.Low))
	require.NoError(t, err)
	assert.Equal(t, s, back)
}
