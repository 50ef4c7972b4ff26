// Package shaders holds the GLSL bodies of every program. Sources carry no #version or
// precision line; the device prepends its own header.
package shaders

import (
	_ "embed"
)

//go:embed particle.vert
var ParticleVert string

//go:embed particle.frag
var ParticleFrag string

//go:embed geometry.vert
var GeometryVert string

//go:embed geometry.frag
var GeometryFrag string

//go:embed fullscreen.vert
var FullscreenVert string

//go:embed blur.frag
var BlurFrag string

//go:embed bloom.frag
var BloomFrag string

//go:embed distortion.frag
var DistortionFrag string

//go:embed copy.frag
var CopyFrag string

//go:embed composite.frag
var CompositeFrag string

//go:embed hud.frag
var HUDFrag string

//go:embed hud.vert
var HUDVert string
