package particles

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	positionLocation = 0
	velocityLocation = 1
	sizeLocation     = 2
	lifeLocation     = 3
)

type Config struct {
	Count  int
	Width  int
	Height int
	// Rand seeds particles; nil uses a time-seeded source.
	Rand *rand.Rand
}

type Engine struct {
	dev    gpu.Device
	logger core.Logger
	rng    *rand.Rand

	program  gpu.Program
	uniforms gpu.Uniforms
	vao      gpu.VertexArray
	buffers  [4]gpu.Buffer

	data       Particles
	count      int
	dirty      bool
	resolution mgl32.Vec2
	pointer    mgl32.Vec2
}

// offscreenPointer keeps the pull inactive until the first pointer event.
var offscreenPointer = mgl32.Vec2{-10000, -10000}

// New builds the particle program and its buffers. A program build failure is logged
// and leaves the engine inert (Ready reports false, Draw does nothing).
func New(dev gpu.Device, logger core.Logger, cfg Config) (*Engine, error) {
	if cfg.Count < 0 {
		return nil, fmt.Errorf("particles: negative count %d", cfg.Count)
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		dev:        dev,
		logger:     core.OrNop(logger),
		rng:        rng,
		count:      cfg.Count,
		dirty:      true,
		resolution: mgl32.Vec2{float32(max(cfg.Width, 1)), float32(max(cfg.Height, 1))},
		pointer:    offscreenPointer,
	}

	program, err := gpu.BuildProgram(dev, "particles", shaders.ParticleVert, shaders.ParticleFrag)
	if err != nil {
		e.logger.Errorf("particle program: %v", err)
		return e, nil
	}
	e.program = program
	e.uniforms = gpu.LookupUniforms(dev, program, "u_resolution", "u_time", "u_mouse")

	e.vao = dev.CreateVertexArray()
	for i := range e.buffers {
		e.buffers[i] = dev.CreateBuffer()
	}
	return e, nil
}

// Ready reports whether the program built.
func (e *Engine) Ready() bool { return e.program != 0 }

func (e *Engine) Count() int { return e.count }

// SetCount schedules a full reallocation with n freshly seeded particles on the next Draw.
func (e *Engine) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	e.count = n
	e.dirty = true
}

// Resize sets the wrap area in device pixels. Existing particles are kept.
func (e *Engine) Resize(width, height int) {
	e.resolution = mgl32.Vec2{float32(max(width, 1)), float32(max(height, 1))}
}

// SetPointer places the attractor, in device pixels.
func (e *Engine) SetPointer(x, y float32) {
	e.pointer = mgl32.Vec2{x, y}
}

func (e *Engine) Pointer() mgl32.Vec2 { return e.pointer }

// Particles exposes the currently uploaded attribute set.
func (e *Engine) Particles() Particles { return e.data }

func (e *Engine) upload() {
	e.data = Seed(e.rng, e.count, e.resolution[0], e.resolution[1])

	e.dev.BindVertexArray(e.vao)
	attribs := []struct {
		loc  int
		size int
		data []float32
	}{
		{positionLocation, 2, e.data.Positions},
		{velocityLocation, 2, e.data.Velocities},
		{sizeLocation, 1, e.data.Sizes},
		{lifeLocation, 1, e.data.Lives},
	}
	for i, a := range attribs {
		e.dev.BindBuffer(gpu.ArrayBuffer, e.buffers[i])
		e.dev.BufferDataFloat32(gpu.ArrayBuffer, a.data, gpu.StaticDraw)
		e.dev.EnableVertexAttribArray(a.loc)
		e.dev.VertexAttribPointer(a.loc, a.size, 0, 0)
	}
	e.dev.BindVertexArray(0)
	e.dev.BindBuffer(gpu.ArrayBuffer, 0)

	e.dirty = false
	e.logger.Debugf("particles uploaded: %d", e.count)
}

// Draw renders every particle at time t (seconds) with a single point draw call.
func (e *Engine) Draw(t float32) {
	if e.program == 0 {
		return
	}
	if e.dirty {
		e.upload()
	}
	if e.count == 0 {
		return
	}

	e.dev.Enable(gpu.ProgramPointSize)
	e.dev.UseProgram(e.program)
	e.dev.Uniform2f(e.uniforms.Get("u_resolution"), e.resolution[0], e.resolution[1])
	e.dev.Uniform1f(e.uniforms.Get("u_time"), t)
	e.dev.Uniform2f(e.uniforms.Get("u_mouse"), e.pointer[0], e.pointer[1])

	e.dev.BindVertexArray(e.vao)
	e.dev.DrawArrays(gpu.Points, 0, e.count)
	e.dev.BindVertexArray(0)
}

func (e *Engine) Release() {
	if e.dev == nil {
		return
	}
	if e.program != 0 {
		for _, b := range e.buffers {
			e.dev.DeleteBuffer(b)
		}
		e.dev.DeleteVertexArray(e.vao)
		e.dev.DeleteProgram(e.program)
	}
	e.program = 0
	e.dev = nil
}
