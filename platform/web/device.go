//go:build js && wasm

// Package web runs the backdrop in a browser: a WebGL2 gpu.Device, a DOM canvas host,
// a capability probe, a requestAnimationFrame scheduler and DOM event wiring.
package web

import (
	"syscall/js"
	"unsafe"

	"github.com/gekko3d/backdrop/rt/gpu"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	dynamicDraw        int
	floatType          int
	unsignedShort      int
	unsignedByte       int
	points             int
	triangles          int
	blend              int
	depthTest          int
	zero               int
	one                int
	srcAlpha           int
	oneMinusSrcAlpha   int
	less               int
	lequal             int
	always             int
	colorBufferBit     int
	depthBufferBit     int
	vertexShader       int
	fragmentShader     int
	compileStatus      int
	linkStatus         int
	texture2D          int
	texture0           int
	rgba               int
	rgba8              int
	textureMinFilter   int
	textureMagFilter   int
	textureWrapS       int
	textureWrapT       int
	linear             int
	nearest            int
	clampToEdge        int
	framebuffer        int
	renderbuffer       int
	colorAttachment0   int
	depthAttachment    int
	depthComponent16   int
	framebufferDone    int
	maxTextureSize     int
}

func readConsts(gl js.Value) glConsts {
	c := func(name string) int { return gl.Get(name).Int() }
	return glConsts{
		arrayBuffer:        c("ARRAY_BUFFER"),
		elementArrayBuffer: c("ELEMENT_ARRAY_BUFFER"),
		staticDraw:         c("STATIC_DRAW"),
		dynamicDraw:        c("DYNAMIC_DRAW"),
		floatType:          c("FLOAT"),
		unsignedShort:      c("UNSIGNED_SHORT"),
		unsignedByte:       c("UNSIGNED_BYTE"),
		points:             c("POINTS"),
		triangles:          c("TRIANGLES"),
		blend:              c("BLEND"),
		depthTest:          c("DEPTH_TEST"),
		zero:               c("ZERO"),
		one:                c("ONE"),
		srcAlpha:           c("SRC_ALPHA"),
		oneMinusSrcAlpha:   c("ONE_MINUS_SRC_ALPHA"),
		less:               c("LESS"),
		lequal:             c("LEQUAL"),
		always:             c("ALWAYS"),
		colorBufferBit:     c("COLOR_BUFFER_BIT"),
		depthBufferBit:     c("DEPTH_BUFFER_BIT"),
		vertexShader:       c("VERTEX_SHADER"),
		fragmentShader:     c("FRAGMENT_SHADER"),
		compileStatus:      c("COMPILE_STATUS"),
		linkStatus:         c("LINK_STATUS"),
		texture2D:          c("TEXTURE_2D"),
		texture0:           c("TEXTURE0"),
		rgba:               c("RGBA"),
		rgba8:              c("RGBA8"),
		textureMinFilter:   c("TEXTURE_MIN_FILTER"),
		textureMagFilter:   c("TEXTURE_MAG_FILTER"),
		textureWrapS:       c("TEXTURE_WRAP_S"),
		textureWrapT:       c("TEXTURE_WRAP_T"),
		linear:             c("LINEAR"),
		nearest:            c("NEAREST"),
		clampToEdge:        c("CLAMP_TO_EDGE"),
		framebuffer:        c("FRAMEBUFFER"),
		renderbuffer:       c("RENDERBUFFER"),
		colorAttachment0:   c("COLOR_ATTACHMENT0"),
		depthAttachment:    c("DEPTH_ATTACHMENT"),
		depthComponent16:   c("DEPTH_COMPONENT16"),
		framebufferDone:    c("FRAMEBUFFER_COMPLETE"),
		maxTextureSize:     c("MAX_TEXTURE_SIZE"),
	}
}

// handles maps the integer handles handed to the renderer onto WebGL objects.
type handles struct {
	next    uint32
	objects map[uint32]js.Value
}

func (h *handles) add(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	if h.objects == nil {
		h.objects = make(map[uint32]js.Value)
	}
	h.next++
	h.objects[h.next] = v
	return h.next
}

// get returns JS null for the zero handle, which WebGL reads as "unbind".
func (h *handles) get(id uint32) js.Value {
	if v, ok := h.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (h *handles) remove(id uint32) (js.Value, bool) {
	v, ok := h.objects[id]
	delete(h.objects, id)
	return v, ok
}

// Device is a gpu.Device over a WebGL2RenderingContext.
type Device struct {
	gl     js.Value
	consts glConsts

	shaders       handles
	programs      handles
	buffers       handles
	vertexArrays  handles
	textures      handles
	renderbuffers handles
	framebuffers  handles
	uniforms      handles

	scratch    js.Value
	scratchCap int
}

// NewDevice wraps a context obtained from canvas.getContext("webgl2").
func NewDevice(gl js.Value) *Device {
	return &Device{gl: gl, consts: readConsts(gl)}
}

func (d *Device) ShaderHeader() string {
	return "#version 300 es\nprecision highp float;\n"
}

func (d *Device) MaxTextureSize() int {
	return d.gl.Call("getParameter", d.consts.maxTextureSize).Int()
}

func (d *Device) capability(c gpu.Capability) (int, bool) {
	switch c {
	case gpu.Blend:
		return d.consts.blend, true
	case gpu.DepthTest:
		return d.consts.depthTest, true
	}
	// gl_PointSize is always honoured in WebGL.
	return 0, false
}

func (d *Device) Enable(c gpu.Capability) {
	if v, ok := d.capability(c); ok {
		d.gl.Call("enable", v)
	}
}

func (d *Device) Disable(c gpu.Capability) {
	if v, ok := d.capability(c); ok {
		d.gl.Call("disable", v)
	}
}

func (d *Device) blendFactor(f gpu.BlendFactor) int {
	switch f {
	case gpu.Zero:
		return d.consts.zero
	case gpu.SrcAlpha:
		return d.consts.srcAlpha
	case gpu.OneMinusSrcAlpha:
		return d.consts.oneMinusSrcAlpha
	}
	return d.consts.one
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.gl.Call("blendFunc", d.blendFactor(src), d.blendFactor(dst))
}

func (d *Device) DepthFunc(f gpu.CompareFunc) {
	v := d.consts.less
	switch f {
	case gpu.LessEqual:
		v = d.consts.lequal
	case gpu.Always:
		v = d.consts.always
	}
	d.gl.Call("depthFunc", v)
}

func (d *Device) ClearColor(r, g, b, a float32) { d.gl.Call("clearColor", r, g, b, a) }

func (d *Device) Clear(mask gpu.ClearMask) {
	bits := 0
	if mask&gpu.ColorBufferBit != 0 {
		bits |= d.consts.colorBufferBit
	}
	if mask&gpu.DepthBufferBit != 0 {
		bits |= d.consts.depthBufferBit
	}
	d.gl.Call("clear", bits)
}

func (d *Device) Viewport(x, y, width, height int) { d.gl.Call("viewport", x, y, width, height) }

func (d *Device) CreateShader(stage gpu.ShaderStage) gpu.Shader {
	kind := d.consts.vertexShader
	if stage == gpu.FragmentShader {
		kind = d.consts.fragmentShader
	}
	return gpu.Shader(d.shaders.add(d.gl.Call("createShader", kind)))
}

func (d *Device) ShaderSource(s gpu.Shader, src string) {
	d.gl.Call("shaderSource", d.shaders.get(uint32(s)), src)
}

func (d *Device) CompileShader(s gpu.Shader) { d.gl.Call("compileShader", d.shaders.get(uint32(s))) }

func (d *Device) ShaderCompiled(s gpu.Shader) bool {
	return d.gl.Call("getShaderParameter", d.shaders.get(uint32(s)), d.consts.compileStatus).Truthy()
}

func (d *Device) ShaderInfoLog(s gpu.Shader) string {
	return jsString(d.gl.Call("getShaderInfoLog", d.shaders.get(uint32(s))))
}

func (d *Device) DeleteShader(s gpu.Shader) {
	if v, ok := d.shaders.remove(uint32(s)); ok {
		d.gl.Call("deleteShader", v)
	}
}

func (d *Device) CreateProgram() gpu.Program {
	return gpu.Program(d.programs.add(d.gl.Call("createProgram")))
}

func (d *Device) AttachShader(p gpu.Program, s gpu.Shader) {
	d.gl.Call("attachShader", d.programs.get(uint32(p)), d.shaders.get(uint32(s)))
}

func (d *Device) LinkProgram(p gpu.Program) { d.gl.Call("linkProgram", d.programs.get(uint32(p))) }

func (d *Device) ProgramLinked(p gpu.Program) bool {
	return d.gl.Call("getProgramParameter", d.programs.get(uint32(p)), d.consts.linkStatus).Truthy()
}

func (d *Device) ProgramInfoLog(p gpu.Program) string {
	return jsString(d.gl.Call("getProgramInfoLog", d.programs.get(uint32(p))))
}

func (d *Device) UseProgram(p gpu.Program) { d.gl.Call("useProgram", d.programs.get(uint32(p))) }

func (d *Device) DeleteProgram(p gpu.Program) {
	if v, ok := d.programs.remove(uint32(p)); ok {
		d.gl.Call("deleteProgram", v)
	}
}

// UniformLocation returns gpu.NoUniform for names the linker dropped. Locations of a
// deleted program are not reclaimed; programs live for the whole session.
func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	loc := d.gl.Call("getUniformLocation", d.programs.get(uint32(p)), name)
	id := d.uniforms.add(loc)
	if id == 0 {
		return gpu.NoUniform
	}
	return gpu.Uniform(id)
}

func (d *Device) uniform(u gpu.Uniform) (js.Value, bool) {
	if u == gpu.NoUniform {
		return js.Null(), false
	}
	v, ok := d.uniforms.objects[uint32(u)]
	return v, ok
}

func (d *Device) Uniform1i(u gpu.Uniform, v int) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform1i", loc, v)
	}
}

func (d *Device) Uniform1f(u gpu.Uniform, v float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform1f", loc, v)
	}
}

func (d *Device) Uniform1fv(u gpu.Uniform, v []float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform1fv", loc, floatArray(v))
	}
}

func (d *Device) Uniform2f(u gpu.Uniform, x, y float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform2f", loc, x, y)
	}
}

func (d *Device) Uniform3f(u gpu.Uniform, x, y, z float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform3f", loc, x, y, z)
	}
}

func (d *Device) Uniform4f(u gpu.Uniform, x, y, z, w float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniform4f", loc, x, y, z, w)
	}
}

func (d *Device) UniformMatrix4fv(u gpu.Uniform, m [16]float32) {
	if loc, ok := d.uniform(u); ok {
		d.gl.Call("uniformMatrix4fv", loc, false, floatArray(m[:]))
	}
}

func (d *Device) bufferTarget(t gpu.BufferTarget) int {
	if t == gpu.ElementArrayBuffer {
		return d.consts.elementArrayBuffer
	}
	return d.consts.arrayBuffer
}

func (d *Device) bufferUsage(u gpu.BufferUsage) int {
	if u == gpu.DynamicDraw {
		return d.consts.dynamicDraw
	}
	return d.consts.staticDraw
}

func (d *Device) CreateBuffer() gpu.Buffer {
	return gpu.Buffer(d.buffers.add(d.gl.Call("createBuffer")))
}

func (d *Device) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	d.gl.Call("bindBuffer", d.bufferTarget(target), d.buffers.get(uint32(b)))
}

func (d *Device) BufferDataFloat32(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	var raw []byte
	if len(data) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	}
	d.gl.Call("bufferData", d.bufferTarget(target), d.bytes(raw), d.bufferUsage(usage))
}

func (d *Device) BufferDataUint16(target gpu.BufferTarget, data []uint16, usage gpu.BufferUsage) {
	var raw []byte
	if len(data) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
	}
	d.gl.Call("bufferData", d.bufferTarget(target), d.bytes(raw), d.bufferUsage(usage))
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	if v, ok := d.buffers.remove(uint32(b)); ok {
		d.gl.Call("deleteBuffer", v)
	}
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	return gpu.VertexArray(d.vertexArrays.add(d.gl.Call("createVertexArray")))
}

func (d *Device) BindVertexArray(v gpu.VertexArray) {
	d.gl.Call("bindVertexArray", d.vertexArrays.get(uint32(v)))
}

func (d *Device) DeleteVertexArray(v gpu.VertexArray) {
	if o, ok := d.vertexArrays.remove(uint32(v)); ok {
		d.gl.Call("deleteVertexArray", o)
	}
}

func (d *Device) EnableVertexAttribArray(loc int) { d.gl.Call("enableVertexAttribArray", loc) }

func (d *Device) VertexAttribPointer(loc, size, stride, offset int) {
	d.gl.Call("vertexAttribPointer", loc, size, d.consts.floatType, false, stride, offset)
}

func (d *Device) CreateTexture() gpu.Texture {
	return gpu.Texture(d.textures.add(d.gl.Call("createTexture")))
}

func (d *Device) ActiveTexture(unit int) { d.gl.Call("activeTexture", d.consts.texture0+unit) }

func (d *Device) BindTexture(t gpu.Texture) {
	d.gl.Call("bindTexture", d.consts.texture2D, d.textures.get(uint32(t)))
}

func (d *Device) TexImage2D(width, height int, pixels []byte) {
	data := js.Null()
	if pixels != nil {
		data = d.bytes(pixels)
	}
	d.gl.Call("texImage2D", d.consts.texture2D, 0, d.consts.rgba8, width, height, 0,
		d.consts.rgba, d.consts.unsignedByte, data)
}

func (d *Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	var name int
	switch p {
	case gpu.TextureMinFilter:
		name = d.consts.textureMinFilter
	case gpu.TextureMagFilter:
		name = d.consts.textureMagFilter
	case gpu.TextureWrapS:
		name = d.consts.textureWrapS
	default:
		name = d.consts.textureWrapT
	}
	value := d.consts.linear
	switch v {
	case gpu.Nearest:
		value = d.consts.nearest
	case gpu.ClampToEdge:
		value = d.consts.clampToEdge
	}
	d.gl.Call("texParameteri", d.consts.texture2D, name, value)
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	if v, ok := d.textures.remove(uint32(t)); ok {
		d.gl.Call("deleteTexture", v)
	}
}

func (d *Device) CreateRenderbuffer() gpu.Renderbuffer {
	return gpu.Renderbuffer(d.renderbuffers.add(d.gl.Call("createRenderbuffer")))
}

func (d *Device) BindRenderbuffer(r gpu.Renderbuffer) {
	d.gl.Call("bindRenderbuffer", d.consts.renderbuffer, d.renderbuffers.get(uint32(r)))
}

func (d *Device) RenderbufferStorageDepth(width, height int) {
	d.gl.Call("renderbufferStorage", d.consts.renderbuffer, d.consts.depthComponent16, width, height)
}

func (d *Device) DeleteRenderbuffer(r gpu.Renderbuffer) {
	if v, ok := d.renderbuffers.remove(uint32(r)); ok {
		d.gl.Call("deleteRenderbuffer", v)
	}
}

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	return gpu.Framebuffer(d.framebuffers.add(d.gl.Call("createFramebuffer")))
}

func (d *Device) BindFramebuffer(f gpu.Framebuffer) {
	d.gl.Call("bindFramebuffer", d.consts.framebuffer, d.framebuffers.get(uint32(f)))
}

func (d *Device) FramebufferTexture(t gpu.Texture) {
	d.gl.Call("framebufferTexture2D", d.consts.framebuffer, d.consts.colorAttachment0,
		d.consts.texture2D, d.textures.get(uint32(t)), 0)
}

func (d *Device) FramebufferRenderbuffer(r gpu.Renderbuffer) {
	d.gl.Call("framebufferRenderbuffer", d.consts.framebuffer, d.consts.depthAttachment,
		d.consts.renderbuffer, d.renderbuffers.get(uint32(r)))
}

func (d *Device) FramebufferComplete() bool {
	return d.gl.Call("checkFramebufferStatus", d.consts.framebuffer).Int() == d.consts.framebufferDone
}

func (d *Device) DeleteFramebuffer(f gpu.Framebuffer) {
	if v, ok := d.framebuffers.remove(uint32(f)); ok {
		d.gl.Call("deleteFramebuffer", v)
	}
}

func (d *Device) primitive(m gpu.Primitive) int {
	if m == gpu.Points {
		return d.consts.points
	}
	return d.consts.triangles
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int) {
	d.gl.Call("drawArrays", d.primitive(mode), first, count)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int) {
	d.gl.Call("drawElements", d.primitive(mode), count, d.consts.unsignedShort, 0)
}

// bytes copies b into a reused Uint8Array and returns a view of exactly len(b) bytes.
// The view is only valid until the next call.
func (d *Device) bytes(b []byte) js.Value {
	if len(b) > d.scratchCap {
		size := max(len(b), 2*d.scratchCap)
		d.scratch = js.Global().Get("Uint8Array").New(size)
		d.scratchCap = size
	}
	if d.scratchCap == 0 {
		return js.Global().Get("Uint8Array").New(0)
	}
	view := d.scratch.Call("subarray", 0, len(b))
	js.CopyBytesToJS(view, b)
	return view
}

func floatArray(v []float32) js.Value {
	out := make([]any, len(v))
	for i, f := range v {
		out[i] = f
	}
	return js.ValueOf(out)
}

func jsString(v js.Value) string {
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

var _ gpu.Device = (*Device)(nil)
