package backdrop

import "math"

// ScrollProgress maps a scroll offset to [0, 1] over the scrollable range of the page.
// A page that cannot scroll reports 0.
func ScrollProgress(scrollY, documentHeight, viewportHeight float64) float32 {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 || math.IsNaN(scrollY) {
		return 0
	}
	p := scrollY / scrollable
	return float32(math.Min(math.Max(p, 0), 1))
}

// WithScroll raises each active effect by progress times its boost. Effects whose base
// value is zero stay off, and nothing changes while post-processing is disabled.
func (s Settings) WithScroll(progress float32) Settings {
	if !s.EnablePostProcessing || progress <= 0 {
		return s
	}
	progress = min(progress, 1)
	if s.BlurStrength > 0 {
		s.BlurStrength += progress * s.ScrollBoost.Blur
	}
	if s.BloomIntensity > 0 {
		s.BloomIntensity += progress * s.ScrollBoost.Bloom
	}
	if s.DistortionStrength > 0 {
		s.DistortionStrength += progress * s.ScrollBoost.Distortion
	}
	return s
}
