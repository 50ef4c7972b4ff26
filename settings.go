package backdrop

import (
	"errors"
	"fmt"
	"math"

	"github.com/gekko3d/backdrop/rt/postfx"
	"github.com/gekko3d/backdrop/rt/probe"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidSetting = errors.New("backdrop: invalid setting")
	ErrNotRunning     = errors.New("backdrop: system not running")
)

// MaxParticles bounds SetParticleCount; above it the upload size stops being decorative.
const MaxParticles = 50000

// ScrollBoost is how much each effect grows between the top and the bottom of the page.
type ScrollBoost struct {
	Blur       float32 `json:"blur"`
	Bloom      float32 `json:"bloom"`
	Distortion float32 `json:"distortion"`
}

var DefaultScrollBoost = ScrollBoost{Blur: 0.5, Bloom: 0.8, Distortion: 0.4}

// Settings are the tunable visual parameters. Strengths of zero switch the matching
// post-processing pass off.
type Settings struct {
	ParticleCount        int              `json:"particle_count"`
	EnableParticles      bool             `json:"enable_particles"`
	EnableGeometry       bool             `json:"enable_geometry"`
	EnablePostProcessing bool             `json:"enable_post_processing"`
	BlurStrength         float32          `json:"blur_strength"`
	BloomIntensity       float32          `json:"bloom_intensity"`
	BloomThreshold       float32          `json:"bloom_threshold"`
	BloomMode            postfx.BloomMode `json:"bloom_mode"`
	DistortionStrength   float32          `json:"distortion_strength"`
	ScrollBoost          ScrollBoost      `json:"scroll_boost"`
}

// Preset returns the default settings of a capability tier.
func Preset(tier probe.Tier) Settings {
	s := Settings{
		EnableParticles: true,
		BloomThreshold:  postfx.DefaultBloomThreshold,
		BloomMode:       postfx.BloomMask,
		ScrollBoost:     DefaultScrollBoost,
	}
	switch tier {
	case probe.High:
		s.ParticleCount = 2000
		s.EnableGeometry = true
		s.EnablePostProcessing = true
		s.BlurStrength = 0.5
		s.BloomIntensity = 1.2
		s.DistortionStrength = 0.3
	case probe.Medium:
		s.ParticleCount = 1000
		s.EnableGeometry = true
		s.EnablePostProcessing = true
		s.BlurStrength = 0.3
		s.BloomIntensity = 1.0
		s.DistortionStrength = 0.2
	default:
		s.ParticleCount = 500
	}
	return s
}

func validStrength(name string, v float32) error {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fmt.Errorf("%s %v: %w", name, v, ErrInvalidSetting)
	}
	return nil
}

func validCount(n int) error {
	if n <= 0 || n > MaxParticles {
		return fmt.Errorf("particle count %d outside 1..%d: %w", n, MaxParticles, ErrInvalidSetting)
	}
	return nil
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	if err := validCount(s.ParticleCount); err != nil {
		return err
	}
	checks := []struct {
		name string
		v    float32
	}{
		{"blur strength", s.BlurStrength},
		{"bloom intensity", s.BloomIntensity},
		{"bloom threshold", s.BloomThreshold},
		{"distortion strength", s.DistortionStrength},
		{"blur scroll boost", s.ScrollBoost.Blur},
		{"bloom scroll boost", s.ScrollBoost.Bloom},
		{"distortion scroll boost", s.ScrollBoost.Distortion},
	}
	for _, c := range checks {
		if err := validStrength(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}

var settingsJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseSettings applies a JSON document on top of base. Fields absent from the
// document keep their base value. The result is validated.
func ParseSettings(data []byte, base Settings) (Settings, error) {
	s := base
	if err := settingsJSON.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

// JSON encodes s with the field names ParseSettings accepts.
func (s Settings) JSON() ([]byte, error) {
	return settingsJSON.Marshal(s)
}
