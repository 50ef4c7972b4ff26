package gpu

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIncompleteFramebuffer = errors.New("gpu: framebuffer incomplete")

// ShaderError reports a compile or link failure. Stage is meaningless when Link is set.
type ShaderError struct {
	Label string
	Stage ShaderStage
	Link  bool
	Log   string
}

func (e *ShaderError) Error() string {
	log := strings.TrimSpace(e.Log)
	if e.Link {
		return fmt.Sprintf("gpu: link %s: %s", e.Label, log)
	}
	return fmt.Sprintf("gpu: compile %s %s shader: %s", e.Label, e.Stage, log)
}

// BuildProgram compiles and links a program, prefixing both sources with the device's
// shader header. On failure nothing is left allocated and the returned Program is zero.
func BuildProgram(dev Device, label, vertexSrc, fragmentSrc string) (Program, error) {
	vs, err := compileShader(dev, label, VertexShader, vertexSrc)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(dev, label, FragmentShader, fragmentSrc)
	if err != nil {
		dev.DeleteShader(vs)
		return 0, err
	}

	program := dev.CreateProgram()
	dev.AttachShader(program, vs)
	dev.AttachShader(program, fs)
	dev.LinkProgram(program)

	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	if !dev.ProgramLinked(program) {
		log := dev.ProgramInfoLog(program)
		dev.DeleteProgram(program)
		return 0, &ShaderError{Label: label, Link: true, Log: log}
	}
	return program, nil
}

func compileShader(dev Device, label string, stage ShaderStage, src string) (Shader, error) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, dev.ShaderHeader()+src)
	dev.CompileShader(shader)
	if !dev.ShaderCompiled(shader) {
		log := dev.ShaderInfoLog(shader)
		dev.DeleteShader(shader)
		return 0, &ShaderError{Label: label, Stage: stage, Log: log}
	}
	return shader, nil
}

// Uniforms caches uniform locations of one program by name.
type Uniforms map[string]Uniform

func LookupUniforms(dev Device, p Program, names ...string) Uniforms {
	u := make(Uniforms, len(names))
	for _, name := range names {
		u[name] = dev.UniformLocation(p, name)
	}
	return u
}

// Get returns NoUniform for names that were never looked up.
func (u Uniforms) Get(name string) Uniform {
	if loc, ok := u[name]; ok {
		return loc
	}
	return NoUniform
}
