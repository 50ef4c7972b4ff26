package backdrop

import (
	"fmt"
	"math"
)

// Param is a value adjustable from the debug panel.
type Param int

const (
	ParamParticles Param = iota
	ParamBlur
	ParamBloom
	ParamDistortion
	numParams
)

// ParamRange is the slider range of a Param.
type ParamRange struct {
	Name           string
	Min, Max, Step float64
}

var paramRanges = [numParams]ParamRange{
	ParamParticles:  {"particles", 100, 3000, 100},
	ParamBlur:       {"blur", 0, 2, 0.1},
	ParamBloom:      {"bloom", 0, 3, 0.1},
	ParamDistortion: {"distortion", 0, 1, 0.1},
}

func (p Param) Range() ParamRange { return paramRanges[p] }

func (p Param) String() string { return paramRanges[p].Name }

// DebugPanel is the keyboard-driven overlay state. Keys: d shows or hides it; while
// shown, Tab selects the next parameter, ArrowUp and ArrowDown nudge it, r resets.
type DebugPanel struct {
	visible  bool
	selected Param
}

func (d *DebugPanel) Visible() bool { return d.visible }

func (d *DebugPanel) Toggle() { d.visible = !d.visible }

func (d *DebugPanel) Selected() Param { return d.selected }

func (d *DebugPanel) next() { d.selected = (d.selected + 1) % numParams }

// nudge moves v by steps within the range, snapped to the step grid.
func (r ParamRange) nudge(v float64, steps int) float64 {
	v = math.Round(v/r.Step)*r.Step + float64(steps)*r.Step
	v = math.Min(math.Max(v, r.Min), r.Max)
	return math.Round(v/r.Step) * r.Step
}

func paramValue(s Settings, p Param) float64 {
	switch p {
	case ParamParticles:
		return float64(s.ParticleCount)
	case ParamBlur:
		return float64(s.BlurStrength)
	case ParamBloom:
		return float64(s.BloomIntensity)
	default:
		return float64(s.DistortionStrength)
	}
}

// Lines renders the panel text for s.
func (d *DebugPanel) Lines(s *System) []string {
	base := s.BaseSettings()
	eff := s.Settings()
	lines := []string{
		"Backdrop Debug",
		fmt.Sprintf("tier %s  fps %.0f", s.Tier(), s.clock.FPS()),
	}
	for p := Param(0); p < numParams; p++ {
		marker := " "
		if p == d.selected {
			marker = ">"
		}
		if p == ParamParticles {
			lines = append(lines, fmt.Sprintf("%s %-10s %d", marker, p, base.ParticleCount))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %-10s %.1f (%.2f)", marker, p, paramValue(base, p), paramValue(eff, p)))
	}
	lines = append(lines,
		fmt.Sprintf("particles %s  geometry %s  post %s", onOff(base.EnableParticles), onOff(base.EnableGeometry), onOff(base.EnablePostProcessing)),
		"d hide  p perf  tab/arrows  r reset",
	)
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// OnKey handles the debug and performance keys. Key names follow DOM KeyboardEvent.key.
func (s *System) OnKey(key string) {
	if !s.usable() {
		return
	}
	switch key {
	case "d", "D":
		s.debug.Toggle()
		return
	case "p", "P":
		s.TogglePerformance()
		return
	}
	if !s.debug.Visible() {
		return
	}
	switch key {
	case "Tab":
		s.debug.next()
	case "ArrowUp":
		s.nudge(s.debug.selected, 1)
	case "ArrowDown":
		s.nudge(s.debug.selected, -1)
	case "r", "R":
		s.ResetSettings()
	}
}

func (s *System) nudge(p Param, steps int) {
	v := p.Range().nudge(paramValue(s.base, p), steps)
	var err error
	switch p {
	case ParamParticles:
		err = s.SetParticleCount(int(math.Round(v)))
	case ParamBlur:
		err = s.SetBlurStrength(float32(v))
	case ParamBloom:
		err = s.SetBloomIntensity(float32(v))
	case ParamDistortion:
		err = s.SetDistortionStrength(float32(v))
	}
	if err != nil {
		s.logger.Warnf("debug panel: %v", err)
	}
}
