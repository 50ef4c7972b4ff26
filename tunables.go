package backdrop

import "fmt"

func (s *System) checkTunable() error {
	if s.inert || s.state == StateUninitialized || s.state == StateDestroyed {
		return fmt.Errorf("state %s: %w", s.state, ErrNotRunning)
	}
	return nil
}

// SetParticleCount reseeds the particle field with n particles on the next frame.
func (s *System) SetParticleCount(n int) error {
	if err := s.checkTunable(); err != nil {
		return err
	}
	if err := validCount(n); err != nil {
		return err
	}
	s.base.ParticleCount = n
	if s.particles != nil {
		s.particles.SetCount(n)
	}
	return nil
}

// SetBlurStrength sets the base blur; 0 disables the pass.
func (s *System) SetBlurStrength(f float32) error {
	if err := s.checkTunable(); err != nil {
		return err
	}
	if err := validStrength("blur strength", f); err != nil {
		return err
	}
	s.base.BlurStrength = f
	return nil
}

func (s *System) SetBloomIntensity(f float32) error {
	if err := s.checkTunable(); err != nil {
		return err
	}
	if err := validStrength("bloom intensity", f); err != nil {
		return err
	}
	s.base.BloomIntensity = f
	return nil
}

func (s *System) SetDistortionStrength(f float32) error {
	if err := s.checkTunable(); err != nil {
		return err
	}
	if err := validStrength("distortion strength", f); err != nil {
		return err
	}
	s.base.DistortionStrength = f
	return nil
}

// TogglePerformance flips the particle, geometry and post-processing switches together.
// Components switched on for the first time are built on the next frame.
func (s *System) TogglePerformance() {
	if s.checkTunable() != nil {
		return
	}
	s.base.EnableParticles = !s.base.EnableParticles
	s.base.EnableGeometry = !s.base.EnableGeometry
	s.base.EnablePostProcessing = !s.base.EnablePostProcessing
	s.logger.Infof("performance toggle: particles=%t geometry=%t post=%t",
		s.base.EnableParticles, s.base.EnableGeometry, s.base.EnablePostProcessing)
}

// ResetSettings restores the settings chosen at initialisation.
func (s *System) ResetSettings() {
	if s.checkTunable() != nil {
		return
	}
	s.base = s.preset
	if s.particles != nil && s.particles.Count() != s.base.ParticleCount {
		s.particles.SetCount(s.base.ParticleCount)
	}
}
