// Package gpu is the GL-shaped device abstraction the renderer is written against.
// Backends live in platform/web (WebGL2) and platform/desktop (OpenGL 3.3 core);
// gputest provides a recording fake.
package gpu

// Object handles. The zero value means "no object"; for Framebuffer it selects the
// default (visible) framebuffer.
type (
	Buffer       uint32
	VertexArray  uint32
	Texture      uint32
	Renderbuffer uint32
	Framebuffer  uint32
	Shader       uint32
	Program      uint32
)

// Uniform is a uniform location. NoUniform marks a name the program does not use;
// setting it is a silent no-op on every backend.
type Uniform int32

const NoUniform Uniform = -1

type Capability int

const (
	Blend Capability = iota
	DepthTest
	// ProgramPointSize lets the vertex shader write gl_PointSize. WebGL always allows it.
	ProgramPointSize
)

type BlendFactor int

const (
	Zero BlendFactor = iota
	One
	SrcAlpha
	OneMinusSrcAlpha
)

type CompareFunc int

const (
	Less CompareFunc = iota
	LessEqual
	Always
)

type ClearMask int

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	if s == VertexShader {
		return "vertex"
	}
	return "fragment"
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

type Primitive int

const (
	Points Primitive = iota
	Triangles
)

func (p Primitive) String() string {
	if p == Points {
		return "points"
	}
	return "triangles"
}

type TexParam int

const (
	TextureMinFilter TexParam = iota
	TextureMagFilter
	TextureWrapS
	TextureWrapT
)

type TexValue int

const (
	Linear TexValue = iota
	Nearest
	ClampToEdge
)

// Device is the subset of the GL API the renderer needs. Calls operate on the currently
// bound objects exactly like their GL counterparts; textures are always TEXTURE_2D RGBA8,
// renderbuffers always DEPTH_COMPONENT16, vertex attributes always tightly typed floats,
// element indices always unsigned 16-bit starting at offset 0.
type Device interface {
	// ShaderHeader is prepended to every shader source (version and precision lines).
	ShaderHeader() string
	MaxTextureSize() int

	Enable(c Capability)
	Disable(c Capability)
	BlendFunc(src, dst BlendFactor)
	DepthFunc(f CompareFunc)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int)

	CreateShader(stage ShaderStage) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)
	UniformLocation(p Program, name string) Uniform

	Uniform1i(u Uniform, v int)
	Uniform1f(u Uniform, v float32)
	Uniform1fv(u Uniform, v []float32)
	Uniform2f(u Uniform, x, y float32)
	Uniform3f(u Uniform, x, y, z float32)
	Uniform4f(u Uniform, x, y, z, w float32)
	UniformMatrix4fv(u Uniform, m [16]float32)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferDataFloat32(target BufferTarget, data []float32, usage BufferUsage)
	BufferDataUint16(target BufferTarget, data []uint16, usage BufferUsage)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(v VertexArray)
	DeleteVertexArray(v VertexArray)
	EnableVertexAttribArray(loc int)
	// VertexAttribPointer describes size floats per vertex, stride and offset in bytes.
	VertexAttribPointer(loc, size, stride, offset int)

	CreateTexture() Texture
	ActiveTexture(unit int)
	BindTexture(t Texture)
	// TexImage2D (re)allocates the bound texture; pixels may be nil.
	TexImage2D(width, height int, pixels []byte)
	TexParameter(p TexParam, v TexValue)
	DeleteTexture(t Texture)

	CreateRenderbuffer() Renderbuffer
	BindRenderbuffer(r Renderbuffer)
	RenderbufferStorageDepth(width, height int)
	DeleteRenderbuffer(r Renderbuffer)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(f Framebuffer)
	FramebufferTexture(t Texture)
	FramebufferRenderbuffer(r Renderbuffer)
	FramebufferComplete() bool
	DeleteFramebuffer(f Framebuffer)

	DrawArrays(mode Primitive, first, count int)
	DrawElements(mode Primitive, count int)
}
