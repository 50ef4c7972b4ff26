// Package gputest provides a recording gpu.Device for headless tests.
package gputest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gekko3d/backdrop/rt/gpu"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw captures the state a draw call was issued with.
type Draw struct {
	Mode        gpu.Primitive
	First       int
	Count       int
	Program     gpu.Program
	Framebuffer gpu.Framebuffer
	Texture     gpu.Texture // bound on unit 0
	Viewport    [4]int
	Blend       bool
	DepthTest   bool
}

// Texture is what the recorder knows about a texture object.
type Texture struct {
	Width, Height int
	Uploads       int
	Pixels        []byte
}

// Recorder implements gpu.Device in memory. Handles are never reused.
type Recorder struct {
	Header     string
	MaxTexture int

	// FailShaders makes compilation fail for any source containing one of the substrings.
	FailShaders []string
	// FailLink makes every link fail.
	FailLink bool
	// IncompleteFramebuffers makes every completeness check fail.
	IncompleteFramebuffers bool

	Calls []Call
	Draws []Draw

	Floats        map[gpu.Buffer][]float32
	Indices       map[gpu.Buffer][]uint16
	Textures      map[gpu.Texture]*Texture
	Renderbuffers map[gpu.Renderbuffer][2]int
	// Values holds the last value set for each uniform, keyed by program then name.
	Values map[gpu.Program]map[string][]float32

	ViewportRect [4]int
	ClearRGBA    [4]float32

	next        uint32
	live        map[string]map[uint32]bool
	sources     map[gpu.Shader]string
	compiled    map[gpu.Shader]bool
	linked      map[gpu.Program]bool
	attached    map[gpu.Program][]gpu.Shader
	uniformByID map[gpu.Uniform]uniformRef
	enabled     map[gpu.Capability]bool

	program      gpu.Program
	framebuffer  gpu.Framebuffer
	arrayBuffer  gpu.Buffer
	elementBuf   gpu.Buffer
	vertexArray  gpu.VertexArray
	renderbuffer gpu.Renderbuffer
	activeUnit   int
	units        map[int]gpu.Texture
}

type uniformRef struct {
	program gpu.Program
	name    string
}

func NewRecorder() *Recorder {
	return &Recorder{
		Header:        "#version 300 es\nprecision highp float;\n",
		MaxTexture:    8192,
		Floats:        make(map[gpu.Buffer][]float32),
		Indices:       make(map[gpu.Buffer][]uint16),
		Textures:      make(map[gpu.Texture]*Texture),
		Renderbuffers: make(map[gpu.Renderbuffer][2]int),
		Values:        make(map[gpu.Program]map[string][]float32),
		live:          make(map[string]map[uint32]bool),
		sources:       make(map[gpu.Shader]string),
		compiled:      make(map[gpu.Shader]bool),
		linked:        make(map[gpu.Program]bool),
		attached:      make(map[gpu.Program][]gpu.Shader),
		uniformByID:   make(map[gpu.Uniform]uniformRef),
		enabled:       make(map[gpu.Capability]bool),
		units:         make(map[int]gpu.Texture),
	}
}

var _ gpu.Device = (*Recorder)(nil)

// ---- inspection helpers ----

// Count returns how many calls with the given name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// DrawsWith returns the draws of one primitive kind.
func (r *Recorder) DrawsWith(mode gpu.Primitive) []Draw {
	var out []Draw
	for _, d := range r.Draws {
		if d.Mode == mode {
			out = append(out, d)
		}
	}
	return out
}

// Live returns the number of undeleted objects of a kind ("buffer", "texture", ...),
// or of all kinds when kind is empty.
func (r *Recorder) Live(kind string) int {
	if kind != "" {
		return len(r.live[kind])
	}
	n := 0
	for _, m := range r.live {
		n += len(m)
	}
	return n
}

// LiveSummary lists leaked objects, useful in failure messages.
func (r *Recorder) LiveSummary() string {
	var parts []string
	for kind, m := range r.live {
		if len(m) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, len(m)))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// Uniform returns the last value set for a named uniform of a program.
func (r *Recorder) Uniform(p gpu.Program, name string) ([]float32, bool) {
	v, ok := r.Values[p][name]
	return v, ok
}

// ProgramUsing returns the first live linked program whose sources contain substr.
func (r *Recorder) ProgramUsing(substr string) gpu.Program {
	ids := make([]int, 0, len(r.attached))
	for p := range r.attached {
		ids = append(ids, int(p))
	}
	sort.Ints(ids)
	for _, id := range ids {
		p := gpu.Program(id)
		if !r.live["program"][uint32(p)] {
			continue
		}
		for _, s := range r.attached[p] {
			if strings.Contains(r.sources[s], substr) {
				return p
			}
		}
	}
	return 0
}

// Enabled reports whether a capability is currently on.
func (r *Recorder) Enabled(c gpu.Capability) bool { return r.enabled[c] }

// BoundFramebuffer returns the current draw framebuffer.
func (r *Recorder) BoundFramebuffer() gpu.Framebuffer { return r.framebuffer }

// ResetLog forgets recorded calls and draws but keeps object state.
func (r *Recorder) ResetLog() {
	r.Calls = nil
	r.Draws = nil
}

// ---- gpu.Device ----

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	if r.live[kind] == nil {
		r.live[kind] = make(map[uint32]bool)
	}
	r.live[kind][r.next] = true
	return r.next
}

func (r *Recorder) free(kind string, id uint32) {
	if id == 0 {
		return
	}
	delete(r.live[kind], id)
}

func (r *Recorder) ShaderHeader() string { return r.Header }
func (r *Recorder) MaxTextureSize() int  { return r.MaxTexture }

func (r *Recorder) Enable(c gpu.Capability) {
	r.record("Enable", c)
	r.enabled[c] = true
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.record("Disable", c)
	r.enabled[c] = false
}

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) { r.record("BlendFunc", src, dst) }
func (r *Recorder) DepthFunc(f gpu.CompareFunc)        { r.record("DepthFunc", f) }

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.ClearRGBA = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask gpu.ClearMask) { r.record("Clear", mask, r.framebuffer) }

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
	r.ViewportRect = [4]int{x, y, width, height}
}

func (r *Recorder) CreateShader(stage gpu.ShaderStage) gpu.Shader {
	s := gpu.Shader(r.alloc("shader"))
	r.record("CreateShader", stage, s)
	return s
}

func (r *Recorder) ShaderSource(s gpu.Shader, src string) { r.sources[s] = src }

func (r *Recorder) CompileShader(s gpu.Shader) {
	r.record("CompileShader", s)
	ok := true
	for _, marker := range r.FailShaders {
		if strings.Contains(r.sources[s], marker) {
			ok = false
		}
	}
	r.compiled[s] = ok
}

func (r *Recorder) ShaderCompiled(s gpu.Shader) bool { return r.compiled[s] }

func (r *Recorder) ShaderInfoLog(s gpu.Shader) string {
	if r.compiled[s] {
		return ""
	}
	return "ERROR: 0:1: injected compile failure"
}

func (r *Recorder) DeleteShader(s gpu.Shader) {
	r.record("DeleteShader", s)
	r.free("shader", uint32(s))
}

func (r *Recorder) CreateProgram() gpu.Program {
	p := gpu.Program(r.alloc("program"))
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) AttachShader(p gpu.Program, s gpu.Shader) {
	r.attached[p] = append(r.attached[p], s)
}

func (r *Recorder) LinkProgram(p gpu.Program) {
	r.record("LinkProgram", p)
	r.linked[p] = !r.FailLink
}

func (r *Recorder) ProgramLinked(p gpu.Program) bool { return r.linked[p] }

func (r *Recorder) ProgramInfoLog(p gpu.Program) string {
	if r.linked[p] {
		return ""
	}
	return "injected link failure"
}

func (r *Recorder) UseProgram(p gpu.Program) {
	r.record("UseProgram", p)
	r.program = p
}

func (r *Recorder) DeleteProgram(p gpu.Program) {
	r.record("DeleteProgram", p)
	r.free("program", uint32(p))
	if r.program == p {
		r.program = 0
	}
}

// UniformLocation hands out a location for any name; the recorder does not parse GLSL.
func (r *Recorder) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	for id, ref := range r.uniformByID {
		if ref.program == p && ref.name == name {
			return id
		}
	}
	id := gpu.Uniform(len(r.uniformByID))
	r.uniformByID[id] = uniformRef{program: p, name: name}
	return id
}

func (r *Recorder) setUniform(u gpu.Uniform, v ...float32) {
	if u == gpu.NoUniform {
		return
	}
	ref, ok := r.uniformByID[u]
	if !ok {
		return
	}
	if r.Values[ref.program] == nil {
		r.Values[ref.program] = make(map[string][]float32)
	}
	r.Values[ref.program][ref.name] = append([]float32(nil), v...)
}

func (r *Recorder) Uniform1i(u gpu.Uniform, v int)           { r.setUniform(u, float32(v)) }
func (r *Recorder) Uniform1f(u gpu.Uniform, v float32)       { r.setUniform(u, v) }
func (r *Recorder) Uniform1fv(u gpu.Uniform, v []float32)    { r.setUniform(u, v...) }
func (r *Recorder) Uniform2f(u gpu.Uniform, x, y float32)    { r.setUniform(u, x, y) }
func (r *Recorder) Uniform3f(u gpu.Uniform, x, y, z float32) { r.setUniform(u, x, y, z) }
func (r *Recorder) Uniform4f(u gpu.Uniform, x, y, z, w float32) {
	r.setUniform(u, x, y, z, w)
}
func (r *Recorder) UniformMatrix4fv(u gpu.Uniform, m [16]float32) { r.setUniform(u, m[:]...) }

func (r *Recorder) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(r.alloc("buffer"))
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	if target == gpu.ElementArrayBuffer {
		r.elementBuf = b
	} else {
		r.arrayBuffer = b
	}
}

func (r *Recorder) BufferDataFloat32(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	b := r.arrayBuffer
	if target == gpu.ElementArrayBuffer {
		b = r.elementBuf
	}
	r.record("BufferData", b, len(data))
	r.Floats[b] = append([]float32(nil), data...)
}

func (r *Recorder) BufferDataUint16(target gpu.BufferTarget, data []uint16, usage gpu.BufferUsage) {
	b := r.elementBuf
	if target == gpu.ArrayBuffer {
		b = r.arrayBuffer
	}
	r.record("BufferData", b, len(data))
	r.Indices[b] = append([]uint16(nil), data...)
}

func (r *Recorder) DeleteBuffer(b gpu.Buffer) {
	r.record("DeleteBuffer", b)
	r.free("buffer", uint32(b))
}

func (r *Recorder) CreateVertexArray() gpu.VertexArray {
	return gpu.VertexArray(r.alloc("vertexarray"))
}

func (r *Recorder) BindVertexArray(v gpu.VertexArray) { r.vertexArray = v }

func (r *Recorder) DeleteVertexArray(v gpu.VertexArray) {
	r.record("DeleteVertexArray", v)
	r.free("vertexarray", uint32(v))
}

func (r *Recorder) EnableVertexAttribArray(loc int) { r.record("EnableVertexAttribArray", loc) }

func (r *Recorder) VertexAttribPointer(loc, size, stride, offset int) {
	r.record("VertexAttribPointer", loc, size, stride, offset)
}

func (r *Recorder) CreateTexture() gpu.Texture {
	t := gpu.Texture(r.alloc("texture"))
	r.Textures[t] = &Texture{}
	return t
}

func (r *Recorder) ActiveTexture(unit int) { r.activeUnit = unit }

func (r *Recorder) BindTexture(t gpu.Texture) { r.units[r.activeUnit] = t }

func (r *Recorder) TexImage2D(width, height int, pixels []byte) {
	t := r.units[r.activeUnit]
	r.record("TexImage2D", t, width, height)
	info := r.Textures[t]
	if info == nil {
		return
	}
	info.Width, info.Height = width, height
	if pixels != nil {
		info.Uploads++
		info.Pixels = append([]byte(nil), pixels...)
	}
}

func (r *Recorder) TexParameter(p gpu.TexParam, v gpu.TexValue) {}

func (r *Recorder) DeleteTexture(t gpu.Texture) {
	r.record("DeleteTexture", t)
	r.free("texture", uint32(t))
}

func (r *Recorder) CreateRenderbuffer() gpu.Renderbuffer {
	return gpu.Renderbuffer(r.alloc("renderbuffer"))
}

func (r *Recorder) BindRenderbuffer(rb gpu.Renderbuffer) { r.renderbuffer = rb }

func (r *Recorder) RenderbufferStorageDepth(width, height int) {
	r.Renderbuffers[r.renderbuffer] = [2]int{width, height}
}

func (r *Recorder) DeleteRenderbuffer(rb gpu.Renderbuffer) {
	r.record("DeleteRenderbuffer", rb)
	r.free("renderbuffer", uint32(rb))
}

func (r *Recorder) CreateFramebuffer() gpu.Framebuffer {
	f := gpu.Framebuffer(r.alloc("framebuffer"))
	r.record("CreateFramebuffer", f)
	return f
}

func (r *Recorder) BindFramebuffer(f gpu.Framebuffer) {
	r.record("BindFramebuffer", f)
	r.framebuffer = f
}

func (r *Recorder) FramebufferTexture(t gpu.Texture)            {}
func (r *Recorder) FramebufferRenderbuffer(rb gpu.Renderbuffer) {}

func (r *Recorder) FramebufferComplete() bool { return !r.IncompleteFramebuffers }

func (r *Recorder) DeleteFramebuffer(f gpu.Framebuffer) {
	r.record("DeleteFramebuffer", f)
	r.free("framebuffer", uint32(f))
}

func (r *Recorder) draw(mode gpu.Primitive, first, count int) {
	r.Draws = append(r.Draws, Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     r.program,
		Framebuffer: r.framebuffer,
		Texture:     r.units[0],
		Viewport:    r.ViewportRect,
		Blend:       r.enabled[gpu.Blend],
		DepthTest:   r.enabled[gpu.DepthTest],
	})
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int) {
	r.record("DrawArrays", mode, first, count)
	r.draw(mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.Primitive, count int) {
	r.record("DrawElements", mode, count)
	r.draw(mode, 0, count)
}
