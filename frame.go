package backdrop

import (
	"fmt"
	"time"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/geometry"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/hud"
	"github.com/gekko3d/backdrop/rt/particles"
	"github.com/gekko3d/backdrop/rt/postfx"
)

// Tick renders one frame dt after the previous one. It does nothing unless running.
func (s *System) Tick(dt time.Duration) {
	if s.inert || s.state != StateRunning {
		return
	}
	s.clock.Advance(dt)
	s.ensureComponents()

	settings := s.Settings()
	t := s.clock.Seconds()
	w, h := s.surface.Size()

	s.dev.Enable(gpu.Blend)
	s.dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	s.dev.Enable(gpu.DepthTest)
	s.dev.DepthFunc(gpu.LessEqual)
	s.dev.ClearColor(0, 0, 0, 0)

	usePost := settings.EnablePostProcessing && s.post != nil
	if usePost {
		s.guard(compPostFX, s.post.BeginRender)
		usePost = s.post != nil
	}
	if !usePost {
		s.dev.BindFramebuffer(0)
		s.dev.Viewport(0, 0, w, h)
		s.dev.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
	}

	if settings.EnableParticles && s.particles != nil {
		s.guard(compParticles, func() { s.particles.Draw(t) })
	}
	if settings.EnableGeometry && s.geometry != nil {
		s.guard(compGeometry, func() {
			s.geometry.DrawScene(t, float32(w)/float32(h))
			s.geometry.Update(s.clock.DtSeconds())
		})
	}
	if usePost {
		s.guard(compPostFX, func() { s.composite(settings, t) })
	}
	if s.debug.Visible() {
		s.drawDebug(w, h)
	}
}

// composite runs the enabled passes in order blur, bloom, distortion and presents.
func (s *System) composite(settings Settings, t float32) {
	s.post.EndRender()
	s.post.BloomMode = settings.BloomMode

	tex := s.post.SceneTexture()
	if settings.BlurStrength > 0 {
		tex = s.post.ApplyBlur(tex, settings.BlurStrength)
	}
	if settings.BloomIntensity > 0 {
		tex = s.post.ApplyBloom(tex, settings.BloomThreshold, settings.BloomIntensity)
	}
	if settings.DistortionStrength > 0 {
		tex = s.post.ApplyDistortion(tex, settings.DistortionStrength, t)
	}
	s.post.RenderToScreen(tex)
}

func (s *System) drawDebug(w, h int) {
	if s.hud == nil && !s.failed[compHUD] {
		s.build(compHUD)
	}
	if s.hud == nil {
		return
	}
	s.guard(compHUD, func() {
		s.hud.SetText(s.debug.Lines(s))
		s.hud.Draw(w, h)
	})
}

// ensureComponents creates every enabled component that does not exist yet. Components
// that failed once stay off.
func (s *System) ensureComponents() {
	if s.base.EnableParticles && s.particles == nil && !s.failed[compParticles] {
		s.build(compParticles)
	}
	if s.base.EnableGeometry && s.geometry == nil && !s.failed[compGeometry] {
		s.build(compGeometry)
	}
	if s.base.EnablePostProcessing && s.post == nil && !s.failed[compPostFX] {
		s.build(compPostFX)
	}
}

func (s *System) build(c component) {
	s.guard(c, func() {
		w, h := s.surface.Size()
		switch c {
		case compParticles:
			e, err := particles.New(s.dev, s.componentLogger(c), particles.Config{
				Count:  s.base.ParticleCount,
				Width:  w,
				Height: h,
				Rand:   s.opts.Rand,
			})
			if err != nil || !e.Ready() {
				s.fail(c, err)
				if e != nil {
					e.Release()
				}
				return
			}
			if s.havePointer {
				e.SetPointer(s.pointer[0], s.pointer[1])
			}
			s.particles = e
		case compGeometry:
			r := geometry.NewRenderer(s.dev, s.componentLogger(c))
			if !r.Ready() {
				s.fail(c, nil)
				r.Release()
				return
			}
			s.geometry = r
		case compPostFX:
			p, err := postfx.New(s.dev, s.componentLogger(c), w, h)
			if err != nil {
				s.fail(c, err)
				return
			}
			s.post = p
		case compHUD:
			o := hud.New(s.dev, s.componentLogger(c), s.opts.Face)
			if !o.Ready() {
				s.fail(c, nil)
				o.Release()
				return
			}
			s.hud = o
		}
		s.logger.Debugf("%s created", c)
	})
}

// componentLogger tags a component's own log lines with its name when the system
// logs through a DefaultLogger.
func (s *System) componentLogger(c component) Logger {
	if d, ok := s.logger.(*core.DefaultLogger); ok {
		return d.WithPrefix(c.tag())
	}
	return s.logger
}

func (s *System) fail(c component, err error) {
	s.failed[c] = true
	if err != nil {
		s.logger.Errorf("%s disabled: %v", c, err)
	} else {
		s.logger.Errorf("%s disabled", c)
	}
	if c == compPostFX {
		s.logger.Warnf("falling back to direct rendering")
	}
}

// guard runs fn and contains a panic to component c, which is then released and
// never rebuilt.
func (s *System) guard(c component, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.release(c)
			s.fail(c, fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
}

// release frees component c. Release itself must not take the frame down.
func (s *System) release(c component) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("releasing %s panicked: %v", c, r)
		}
	}()
	switch c {
	case compParticles:
		if p := s.particles; p != nil {
			s.particles = nil
			p.Release()
		}
	case compGeometry:
		if g := s.geometry; g != nil {
			s.geometry = nil
			g.Release()
		}
	case compPostFX:
		if p := s.post; p != nil {
			s.post = nil
			p.Release()
		}
	case compHUD:
		if o := s.hud; o != nil {
			s.hud = nil
			o.Release()
		}
	}
}

// OnResize follows a viewport change given in CSS pixels.
func (s *System) OnResize(cssW, cssH int) {
	if !s.usable() {
		return
	}
	w, h := s.surface.Resize(cssW, cssH)
	if s.particles != nil {
		s.particles.Resize(w, h)
	}
	if s.post != nil {
		if err := s.post.Resize(w, h); err != nil {
			s.release(compPostFX)
			s.fail(compPostFX, err)
		}
	}
}

// OnPointer moves the particle attractor; coordinates are CSS pixels.
func (s *System) OnPointer(cssX, cssY float64) {
	if !s.usable() {
		return
	}
	r := s.surface.PixelRatio()
	s.pointer = [2]float32{float32(cssX * r), float32(cssY * r)}
	s.havePointer = true
	if s.particles != nil {
		s.particles.SetPointer(s.pointer[0], s.pointer[1])
	}
}

// OnScroll couples effect strength to how far the page is scrolled.
func (s *System) OnScroll(scrollY, documentHeight, viewportHeight float64) {
	if !s.usable() {
		return
	}
	s.scroll = ScrollProgress(scrollY, documentHeight, viewportHeight)
}

// ScrollProgress is the last normalised scroll position.
func (s *System) ScrollProgress() float32 { return s.scroll }
