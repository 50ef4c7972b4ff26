package postfx

import (
	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/shaders"
)

// Pass is one full-screen program. A pass whose program failed to build is kept as a
// placeholder that passes its input through.
type Pass struct {
	Name     string
	program  gpu.Program
	uniforms gpu.Uniforms
}

func newPass(dev gpu.Device, logger core.Logger, name, fragment string, uniforms ...string) *Pass {
	p := &Pass{Name: name}
	program, err := gpu.BuildProgram(dev, name, shaders.FullscreenVert, fragment)
	if err != nil {
		logger.Errorf("post-processing %s pass disabled: %v", name, err)
		return p
	}
	p.program = program
	p.uniforms = gpu.LookupUniforms(dev, program, append([]string{"u_texture"}, uniforms...)...)
	return p
}

func (p *Pass) Ready() bool { return p != nil && p.program != 0 }

func (p *Pass) release(dev gpu.Device) {
	if p.Ready() {
		dev.DeleteProgram(p.program)
		p.program = 0
	}
}
