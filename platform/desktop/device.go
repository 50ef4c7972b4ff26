//go:build !js

// Package desktop previews the backdrop in a GLFW window over OpenGL 3.3 core.
package desktop

import (
	"strings"
	"unsafe"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Device is a gpu.Device over the current OpenGL context. Every call must come from
// the thread the context is current on.
type Device struct {
	maxTexture int32
}

// NewDevice loads the GL entry points for the current context.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	d := &Device{}
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &d.maxTexture)
	return d, nil
}

func (d *Device) ShaderHeader() string {
	return "#version 330 core\nprecision highp float;\n"
}

func (d *Device) MaxTextureSize() int { return int(d.maxTexture) }

func capability(c gpu.Capability) uint32 {
	switch c {
	case gpu.Blend:
		return gl.BLEND
	case gpu.DepthTest:
		return gl.DEPTH_TEST
	}
	return gl.PROGRAM_POINT_SIZE
}

func (d *Device) Enable(c gpu.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c gpu.Capability) { gl.Disable(capability(c)) }

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.Zero:
		return gl.ZERO
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) DepthFunc(f gpu.CompareFunc) {
	switch f {
	case gpu.LessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case gpu.Always:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) CreateShader(stage gpu.ShaderStage) gpu.Shader {
	if stage == gpu.FragmentShader {
		return gpu.Shader(gl.CreateShader(gl.FRAGMENT_SHADER))
	}
	return gpu.Shader(gl.CreateShader(gl.VERTEX_SHADER))
}

func (d *Device) ShaderSource(s gpu.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (d *Device) CompileShader(s gpu.Shader) { gl.CompileShader(uint32(s)) }

func (d *Device) ShaderCompiled(s gpu.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(s gpu.Shader) string {
	var n int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(uint32(s), n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(s gpu.Shader) { gl.DeleteShader(uint32(s)) }

func (d *Device) CreateProgram() gpu.Program { return gpu.Program(gl.CreateProgram()) }

func (d *Device) AttachShader(p gpu.Program, s gpu.Shader) { gl.AttachShader(uint32(p), uint32(s)) }

func (d *Device) LinkProgram(p gpu.Program) { gl.LinkProgram(uint32(p)) }

func (d *Device) ProgramLinked(p gpu.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(p gpu.Program) string {
	var n int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(uint32(p), n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) UseProgram(p gpu.Program)    { gl.UseProgram(uint32(p)) }
func (d *Device) DeleteProgram(p gpu.Program) { gl.DeleteProgram(uint32(p)) }

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) Uniform1i(u gpu.Uniform, v int)        { gl.Uniform1i(int32(u), int32(v)) }
func (d *Device) Uniform1f(u gpu.Uniform, v float32)    { gl.Uniform1f(int32(u), v) }
func (d *Device) Uniform2f(u gpu.Uniform, x, y float32) { gl.Uniform2f(int32(u), x, y) }
func (d *Device) Uniform3f(u gpu.Uniform, x, y, z float32) {
	gl.Uniform3f(int32(u), x, y, z)
}
func (d *Device) Uniform4f(u gpu.Uniform, x, y, z, w float32) {
	gl.Uniform4f(int32(u), x, y, z, w)
}

func (d *Device) Uniform1fv(u gpu.Uniform, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(int32(u), int32(len(v)), &v[0])
}

func (d *Device) UniformMatrix4fv(u gpu.Uniform, m [16]float32) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	if u == gpu.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func (d *Device) CreateBuffer() gpu.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gpu.Buffer(b)
}

func (d *Device) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	gl.BindBuffer(bufferTarget(target), uint32(b))
}

func (d *Device) BufferDataFloat32(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (d *Device) BufferDataUint16(target gpu.BufferTarget, data []uint16, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data)*2, gl.Ptr(data), bufferUsage(usage))
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return gpu.VertexArray(v)
}

func (d *Device) BindVertexArray(v gpu.VertexArray) { gl.BindVertexArray(uint32(v)) }

func (d *Device) DeleteVertexArray(v gpu.VertexArray) {
	id := uint32(v)
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) EnableVertexAttribArray(loc int) { gl.EnableVertexAttribArray(uint32(loc)) }

func (d *Device) VertexAttribPointer(loc, size, stride, offset int) {
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

func (d *Device) CreateTexture() gpu.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gpu.Texture(t)
}

func (d *Device) ActiveTexture(unit int) { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) }

func (d *Device) BindTexture(t gpu.Texture) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }

func (d *Device) TexImage2D(width, height int, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (d *Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	var name uint32
	switch p {
	case gpu.TextureMinFilter:
		name = gl.TEXTURE_MIN_FILTER
	case gpu.TextureMagFilter:
		name = gl.TEXTURE_MAG_FILTER
	case gpu.TextureWrapS:
		name = gl.TEXTURE_WRAP_S
	default:
		name = gl.TEXTURE_WRAP_T
	}
	value := int32(gl.LINEAR)
	switch v {
	case gpu.Nearest:
		value = gl.NEAREST
	case gpu.ClampToEdge:
		value = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, name, value)
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (d *Device) CreateRenderbuffer() gpu.Renderbuffer {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return gpu.Renderbuffer(r)
}

func (d *Device) BindRenderbuffer(r gpu.Renderbuffer) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(r))
}

func (d *Device) RenderbufferStorageDepth(width, height int) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, int32(width), int32(height))
}

func (d *Device) DeleteRenderbuffer(r gpu.Renderbuffer) {
	id := uint32(r)
	gl.DeleteRenderbuffers(1, &id)
}

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return gpu.Framebuffer(f)
}

func (d *Device) BindFramebuffer(f gpu.Framebuffer) { gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(f)) }

func (d *Device) FramebufferTexture(t gpu.Texture) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(t), 0)
}

func (d *Device) FramebufferRenderbuffer(r gpu.Renderbuffer) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, uint32(r))
}

func (d *Device) FramebufferComplete() bool {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

func (d *Device) DeleteFramebuffer(f gpu.Framebuffer) {
	id := uint32(f)
	gl.DeleteFramebuffers(1, &id)
}

func primitive(m gpu.Primitive) uint32 {
	if m == gpu.Points {
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int) {
	gl.DrawArrays(primitive(mode), int32(first), int32(count))
}

func (d *Device) DrawElements(mode gpu.Primitive, count int) {
	gl.DrawElements(primitive(mode), int32(count), gl.UNSIGNED_SHORT, nil)
}

var _ gpu.Device = (*Device)(nil)
