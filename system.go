// Package backdrop is a decorative GPU background layer: a drifting particle field,
// a few floating lit solids and a post-processing chain, drawn behind page content.
//
// A System is driven either by its Scheduler (Start arms one frame at a time) or
// directly through Tick. All methods must be called from the thread that owns the
// graphics context.
package backdrop

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/geometry"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/hud"
	"github.com/gekko3d/backdrop/rt/particles"
	"github.com/gekko3d/backdrop/rt/postfx"
	"github.com/gekko3d/backdrop/rt/probe"
	"github.com/gekko3d/backdrop/rt/surface"
	"github.com/google/uuid"
	"golang.org/x/image/font"
)

type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateRunning
	StateStopped
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scheduler arranges for fn to run once, typically on the next display refresh, with a
// monotonic timestamp.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration))
}

type SchedulerFunc func(fn func(now time.Duration))

func (f SchedulerFunc) RequestFrame(fn func(now time.Duration)) { f(fn) }

type Options struct {
	Host  surface.Host
	Probe probe.Source
	// Settings replaces the tier preset when set.
	Settings *Settings
	// Overrides is a JSON document applied on top of the preset (or Settings).
	Overrides []byte
	Scheduler Scheduler
	Logger    Logger
	// Rand seeds particles; nil seeds from the clock.
	Rand *rand.Rand
	// Face is the debug overlay font; nil uses the embedded Go Mono face.
	Face font.Face
}

type component int

const (
	compParticles component = iota
	compGeometry
	compPostFX
	compHUD
	numComponents
)

func (c component) String() string {
	return [...]string{"particles", "geometry", "post-processing", "hud"}[c]
}

// tag is the short name used in log prefixes.
func (c component) tag() string {
	return [...]string{"particles", "geometry", "postfx", "hud"}[c]
}

type System struct {
	id     uuid.UUID
	opts   Options
	logger Logger

	state State
	inert bool

	surface *surface.Manager
	dev     gpu.Device
	tier    probe.Tier
	hints   probe.Hints
	preset  Settings
	base    Settings
	scroll  float32
	clock   core.Clock

	particles *particles.Engine
	geometry  *geometry.Renderer
	post      *postfx.Pipeline
	hud       *hud.HUD
	failed    [numComponents]bool

	pointer     [2]float32
	havePointer bool

	debug DebugPanel

	last     time.Duration
	haveLast bool
	pending  bool
}

func New(opts Options) *System {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = core.NewDefaultLogger("backdrop "+id.String()[:8], false)
	}
	return &System{id: id, opts: opts, logger: logger}
}

func (s *System) ID() uuid.UUID { return s.id }

func (s *System) State() State { return s.state }

// Inert reports that initialisation found no usable graphics context. An inert system
// ignores every call.
func (s *System) Inert() bool { return s.inert }

func (s *System) Tier() probe.Tier { return s.tier }

func (s *System) Hints() probe.Hints { return s.hints }

// Init probes the host, picks the settings, creates the surface and the enabled
// components, then starts the frame loop. An unsupported host leaves the system inert;
// the returned error is informational and wraps probe.ErrUnsupported.
func (s *System) Init() (err error) {
	if s.state != StateUninitialized || s.inert {
		return fmt.Errorf("backdrop: init in state %s", s.state)
	}
	s.state = StateInitializing
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("init panicked: %v", r)
			err = s.goInert(fmt.Errorf("init panicked: %v: %w", r, probe.ErrUnsupported))
		}
	}()

	tier, hints, perr := probe.Detect(s.opts.Probe, s.logger)
	if perr != nil {
		if errors.Is(perr, probe.ErrUnsupported) {
			return s.goInert(perr)
		}
		s.logger.Warnf("capability probe: %v; assuming %s tier", perr, probe.Low)
		tier = probe.Low
	}
	s.tier, s.hints = tier, hints
	s.preset = s.initialSettings()
	s.base = s.preset

	if s.opts.Host == nil {
		return s.goInert(fmt.Errorf("backdrop: no host: %w", probe.ErrUnsupported))
	}
	s.surface = surface.New(s.opts.Host, s.logger)
	dev, serr := s.surface.Create()
	if serr != nil {
		if !errors.Is(serr, probe.ErrUnsupported) {
			serr = fmt.Errorf("%w: %w", probe.ErrUnsupported, serr)
		}
		return s.goInert(serr)
	}
	s.dev = dev
	s.ensureComponents()

	w, h := s.surface.Size()
	s.logger.Infof("initialised: tier=%s size=%dx%d particles=%d geometry=%t post=%t",
		s.tier, w, h, s.base.ParticleCount, s.base.EnableGeometry, s.base.EnablePostProcessing)

	s.state = StateStopped
	s.Start()
	return nil
}

func (s *System) initialSettings() Settings {
	settings := Preset(s.tier)
	if s.opts.Settings != nil {
		if err := s.opts.Settings.Validate(); err != nil {
			s.logger.Warnf("ignoring explicit settings: %v", err)
		} else {
			settings = *s.opts.Settings
		}
	}
	if len(s.opts.Overrides) > 0 {
		parsed, err := ParseSettings(s.opts.Overrides, settings)
		if err != nil {
			s.logger.Warnf("ignoring settings overrides: %v", err)
		} else {
			settings = parsed
		}
	}
	return settings
}

func (s *System) goInert(err error) error {
	s.logger.Warnf("graphics unavailable, staying inert: %v", err)
	for c := component(0); c < numComponents; c++ {
		s.release(c)
	}
	if s.surface != nil {
		s.surface.Destroy()
	}
	s.inert = true
	s.state = StateUninitialized
	return err
}

// usable reports whether the system holds live GPU state.
func (s *System) usable() bool {
	return !s.inert && (s.state == StateRunning || s.state == StateStopped)
}

// Start resumes the frame loop. The first call initialises the system.
func (s *System) Start() {
	switch {
	case s.inert || s.state == StateDestroyed || s.state == StateRunning:
		return
	case s.state == StateUninitialized:
		_ = s.Init()
		return
	}
	s.state = StateRunning
	s.haveLast = false
	s.arm()
	s.logger.Debugf("started")
}

// Stop halts the frame loop and keeps every GPU resource for a later Start.
func (s *System) Stop() {
	if s.state != StateRunning {
		return
	}
	s.state = StateStopped
	s.logger.Debugf("stopped")
}

func (s *System) arm() {
	if s.pending || s.opts.Scheduler == nil {
		return
	}
	s.pending = true
	s.opts.Scheduler.RequestFrame(s.Frame)
}

// Frame is the scheduler callback: it ticks by the time elapsed since the previous
// frame and re-arms itself while running.
func (s *System) Frame(now time.Duration) {
	s.pending = false
	if s.state != StateRunning {
		return
	}
	var dt time.Duration
	if s.haveLast {
		dt = now - s.last
	}
	s.last, s.haveLast = now, true

	s.Tick(dt)
	if s.state == StateRunning {
		s.arm()
	}
}

// Destroy releases every GPU object and detaches the surface. It is final and safe to
// call more than once.
func (s *System) Destroy() {
	if s.state == StateDestroyed {
		return
	}
	s.state = StateDestroyed
	for c := component(0); c < numComponents; c++ {
		s.release(c)
	}
	if s.surface != nil {
		s.surface.Destroy()
	}
	s.dev = nil
	s.logger.Infof("destroyed")
}

// Settings returns the values in effect, scroll coupling included.
func (s *System) Settings() Settings {
	return s.base.WithScroll(s.scroll)
}

// BaseSettings returns the values set through the tunables, before scroll coupling.
func (s *System) BaseSettings() Settings { return s.base }

// Clock exposes frame timing.
func (s *System) Clock() *core.Clock { return &s.clock }

func (s *System) DebugPanel() *DebugPanel { return &s.debug }
