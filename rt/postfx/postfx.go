// Package postfx renders the scene into an off-screen target and runs it through a
// chain of full-screen passes (blur, bloom, distortion) before presenting it.
package postfx

import (
	"fmt"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/shaders"
)

// BlurKernel holds the 9 tap weights of the separable blur, centre at index 4. The
// shader divides by the weight total, so the kernel needs not be normalised exactly.
var BlurKernel = [9]float32{
	0.077847, 0.123317, 0.077847,
	0.123317, 0.195346, 0.123317,
	0.077847, 0.123317, 0.077847,
}

// DefaultBloomThreshold is the luminance above which pixels contribute to bloom.
const DefaultBloomThreshold = 0.8

type BloomMode int

const (
	// BloomMask replaces the image with its scaled highlights, leaving everything below
	// the threshold black.
	BloomMask BloomMode = iota
	// BloomComposite blurs the highlight mask and adds it on top of the input.
	BloomComposite
)

func (m BloomMode) String() string {
	if m == BloomComposite {
		return "composite"
	}
	return "mask"
}

type Pipeline struct {
	dev    gpu.Device
	logger core.Logger
	quad   *gpu.Quad

	width  int
	height int

	scene *gpu.RenderTarget
	ping  *gpu.RenderTarget
	pong  *gpu.RenderTarget
	glow  *gpu.RenderTarget // BloomComposite only

	blur       *Pass
	bloom      *Pass
	distortion *Pass
	copy       *Pass
	composite  *Pass

	BloomMode BloomMode
}

// New allocates the scene target and the ping-pong pair at width x height and builds
// every pass. A failed pass is logged and skipped at draw time; an incomplete
// framebuffer fails the whole pipeline with gpu.ErrIncompleteFramebuffer.
func New(dev gpu.Device, logger core.Logger, width, height int) (*Pipeline, error) {
	p := &Pipeline{dev: dev, logger: core.OrNop(logger)}
	if err := p.allocate(width, height); err != nil {
		return nil, err
	}
	p.quad = gpu.NewQuad(dev)

	p.blur = newPass(dev, p.logger, "blur", shaders.BlurFrag, "u_resolution", "u_blurStrength", "u_direction", "u_weights")
	p.bloom = newPass(dev, p.logger, "bloom", shaders.BloomFrag, "u_threshold", "u_intensity")
	p.distortion = newPass(dev, p.logger, "distortion", shaders.DistortionFrag, "u_time", "u_strength")
	p.copy = newPass(dev, p.logger, "copy", shaders.CopyFrag)
	p.composite = newPass(dev, p.logger, "composite", shaders.CompositeFrag, "u_glow")

	p.logger.Debugf("post-processing ready at %dx%d", width, height)
	return p, nil
}

func (p *Pipeline) allocate(width, height int) error {
	var err error
	if p.scene, err = gpu.NewRenderTarget(p.dev, width, height); err != nil {
		return fmt.Errorf("postfx scene target: %w", err)
	}
	if p.ping, err = gpu.NewRenderTarget(p.dev, width, height); err != nil {
		p.releaseTargets()
		return fmt.Errorf("postfx ping target: %w", err)
	}
	if p.pong, err = gpu.NewRenderTarget(p.dev, width, height); err != nil {
		p.releaseTargets()
		return fmt.Errorf("postfx pong target: %w", err)
	}
	p.width, p.height = width, height
	return nil
}

func (p *Pipeline) releaseTargets() {
	for _, t := range []**gpu.RenderTarget{&p.scene, &p.ping, &p.pong, &p.glow} {
		(*t).Release()
		*t = nil
	}
}

// Resize recreates every target at the new size. On failure the pipeline holds no
// targets and must be released.
func (p *Pipeline) Resize(width, height int) error {
	if width == p.width && height == p.height && p.scene != nil {
		return nil
	}
	p.releaseTargets()
	return p.allocate(width, height)
}

func (p *Pipeline) Size() (int, int) { return p.width, p.height }

// SceneTexture is the color attachment the scene is rendered into.
func (p *Pipeline) SceneTexture() gpu.Texture { return p.scene.Color }

// BeginRender redirects drawing into the scene target and clears it.
func (p *Pipeline) BeginRender() {
	p.scene.Bind()
	p.dev.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
}

// EndRender restores the default framebuffer.
func (p *Pipeline) EndRender() {
	p.dev.BindFramebuffer(0)
	p.dev.Viewport(0, 0, p.width, p.height)
}

// other picks the ping-pong target that does not hold tex.
func (p *Pipeline) other(tex gpu.Texture) *gpu.RenderTarget {
	if tex == p.ping.Color {
		return p.pong
	}
	return p.ping
}

// run draws one pass reading input into dst with blend and depth test off.
func (p *Pipeline) run(pass *Pass, input gpu.Texture, dst *gpu.RenderTarget, set func(u gpu.Uniforms)) gpu.Texture {
	if !pass.Ready() {
		return input
	}
	dst.Bind()
	p.dev.Disable(gpu.Blend)
	p.dev.Disable(gpu.DepthTest)
	p.dev.ClearColor(0, 0, 0, 0)
	p.dev.Clear(gpu.ColorBufferBit)

	p.dev.UseProgram(pass.program)
	p.dev.ActiveTexture(0)
	p.dev.BindTexture(input)
	p.dev.Uniform1i(pass.uniforms.Get("u_texture"), 0)
	if set != nil {
		set(pass.uniforms)
	}
	p.quad.Draw()
	return dst.Color
}

func (p *Pipeline) blurInto(input gpu.Texture, strength float32, first, second *gpu.RenderTarget) gpu.Texture {
	if !p.blur.Ready() {
		return input
	}
	set := func(dx, dy float32) func(u gpu.Uniforms) {
		return func(u gpu.Uniforms) {
			p.dev.Uniform2f(u.Get("u_resolution"), float32(p.width), float32(p.height))
			p.dev.Uniform1f(u.Get("u_blurStrength"), strength)
			p.dev.Uniform2f(u.Get("u_direction"), dx, dy)
			p.dev.Uniform1fv(u.Get("u_weights"), BlurKernel[:])
		}
	}
	h := p.run(p.blur, input, first, set(1, 0))
	return p.run(p.blur, h, second, set(0, 1))
}

// ApplyBlur runs the separable blur, horizontal then vertical. Sample offsets are
// direction * strength / resolution.
func (p *Pipeline) ApplyBlur(tex gpu.Texture, strength float32) gpu.Texture {
	first := p.other(tex)
	return p.blurInto(tex, strength, first, p.other(first.Color))
}

// ApplyBloom extracts pixels brighter than threshold, scaled by intensity. In
// BloomComposite mode the mask is blurred and added onto tex.
func (p *Pipeline) ApplyBloom(tex gpu.Texture, threshold, intensity float32) gpu.Texture {
	set := func(u gpu.Uniforms) {
		p.dev.Uniform1f(u.Get("u_threshold"), threshold)
		p.dev.Uniform1f(u.Get("u_intensity"), intensity)
	}
	if p.BloomMode != BloomComposite || !p.composite.Ready() || !p.bloom.Ready() {
		return p.run(p.bloom, tex, p.other(tex), set)
	}

	if p.glow == nil {
		glow, err := gpu.NewRenderTarget(p.dev, p.width, p.height)
		if err != nil {
			p.logger.Warnf("bloom glow target: %v; using mask bloom", err)
			return p.run(p.bloom, tex, p.other(tex), set)
		}
		p.glow = glow
	}
	scratch := p.other(tex)
	mask := p.run(p.bloom, tex, p.glow, set)
	mask = p.blurInto(mask, 1, scratch, p.glow)
	return p.run(p.composite, tex, scratch, func(u gpu.Uniforms) {
		p.dev.ActiveTexture(1)
		p.dev.BindTexture(mask)
		p.dev.Uniform1i(u.Get("u_glow"), 1)
		p.dev.ActiveTexture(0)
	})
}

// ApplyDistortion offsets texture lookups by two summed sine waves animated by t (seconds).
func (p *Pipeline) ApplyDistortion(tex gpu.Texture, strength, t float32) gpu.Texture {
	return p.run(p.distortion, tex, p.other(tex), func(u gpu.Uniforms) {
		p.dev.Uniform1f(u.Get("u_time"), t)
		p.dev.Uniform1f(u.Get("u_strength"), strength)
	})
}

// RenderToScreen copies tex onto the default framebuffer.
func (p *Pipeline) RenderToScreen(tex gpu.Texture) {
	if !p.copy.Ready() {
		return
	}
	p.dev.BindFramebuffer(0)
	p.dev.Viewport(0, 0, p.width, p.height)
	p.dev.Disable(gpu.Blend)
	p.dev.Disable(gpu.DepthTest)

	p.dev.UseProgram(p.copy.program)
	p.dev.ActiveTexture(0)
	p.dev.BindTexture(tex)
	p.dev.Uniform1i(p.copy.uniforms.Get("u_texture"), 0)
	p.quad.Draw()
}

// Release frees every target, program and the quad. Safe to call repeatedly.
func (p *Pipeline) Release() {
	if p.dev == nil {
		return
	}
	p.releaseTargets()
	for _, pass := range []*Pass{p.blur, p.bloom, p.distortion, p.copy, p.composite} {
		if pass != nil {
			pass.release(p.dev)
		}
	}
	p.quad.Release()
	p.dev = nil
}

func (m BloomMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *BloomMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "mask", "":
		*m = BloomMask
	case "composite":
		*m = BloomComposite
	default:
		return fmt.Errorf("postfx: unknown bloom mode %q", b)
	}
	return nil
}
