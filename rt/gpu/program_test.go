package gpu_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gekko3d/backdrop/rt/gpu"
	"github.com/gekko3d/backdrop/rt/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProgramPrependsHeader(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.Header = "#version 330 core\n"

	p, err := gpu.BuildProgram(dev, "copy", "void main() {}\n", "void main() {}\n")
	require.NoError(t, err)
	require.NotZero(t, p)

	// shaders are deleted after a successful link, only the program survives
	assert.Equal(t, 0, dev.Live("shader"))
	assert.Equal(t, 1, dev.Live("program"))
	assert.Equal(t, p, dev.ProgramUsing("#version 330 core"))
}

func TestBuildProgramCompileFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailShaders = []string{"BROKEN"}

	p, err := gpu.BuildProgram(dev, "blur", "void main() {}", "BROKEN")
	if p != 0 {
		t.Errorf("expected zero program, got %d", p)
	}

	var shaderErr *gpu.ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, gpu.FragmentShader, shaderErr.Stage)
	assert.False(t, shaderErr.Link)
	assert.True(t, strings.Contains(err.Error(), "blur fragment shader"), err.Error())
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}

func TestBuildProgramLinkFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailLink = true

	_, err := gpu.BuildProgram(dev, "bloom", "void main() {}", "void main() {}")
	var shaderErr *gpu.ShaderError
	require.ErrorAs(t, err, &shaderErr)
	assert.True(t, shaderErr.Link)
	assert.Equal(t, 0, dev.Live(""), dev.LiveSummary())
}

func TestUniformsGetUnknown(t *testing.T) {
	dev := gputest.NewRecorder()
	p, err := gpu.BuildProgram(dev, "x", "void main() {}", "void main() {}")
	require.NoError(t, err)

	u := gpu.LookupUniforms(dev, p, "u_time")
	assert.NotEqual(t, gpu.NoUniform, u.Get("u_time"))
	assert.Equal(t, gpu.NoUniform, u.Get("u_missing"))

	// setting an unknown uniform must be harmless
	dev.UseProgram(p)
	dev.Uniform1f(u.Get("u_missing"), 1)
	_, ok := dev.Uniform(p, "u_missing")
	assert.False(t, ok)
}
