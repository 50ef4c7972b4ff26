package probe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gekko3d/backdrop/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		hints Hints
		want  Tier
	}{
		{"mobile wins", Hints{Mobile: true, DeviceMemoryGB: 16, MaxTextureSize: 16384}, Low},
		{"low memory", Hints{DeviceMemoryGB: 2, MaxTextureSize: 8192}, Low},
		{"small textures", Hints{DeviceMemoryGB: 8, MaxTextureSize: 1024}, Low},
		{"unknown memory is medium", Hints{MaxTextureSize: 4096}, Medium},
		{"desktop 8GB 4k", Hints{DeviceMemoryGB: 8, MaxTextureSize: 4096}, High},
		{"8GB but 2k textures", Hints{DeviceMemoryGB: 8, MaxTextureSize: 2048}, Medium},
		{"4GB 16k", Hints{DeviceMemoryGB: 4, MaxTextureSize: 16384}, Medium},
		{"boundary 2048", Hints{DeviceMemoryGB: 4, MaxTextureSize: 2048}, Medium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.hints); got != tt.want {
				t.Errorf("Classify(%+v) = %s, want %s", tt.hints, got, tt.want)
			}
		})
	}
}

func TestIsMobileUserAgent(t *testing.T) {
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (Linux; Android 14; Pixel 8)"))
	assert.True(t, IsMobileUserAgent("Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)"))
	assert.False(t, IsMobileUserAgent("Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/128.0"))
	assert.False(t, IsMobileUserAgent(""))
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{Low, Medium, High} {
		got, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	got, err := ParseTier(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, High, got)

	_, err = ParseTier("ultra")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	tier, h, err := Detect(Static{DeviceMemoryGB: 16, MaxTextureSize: 8192, Cores: 8}, core.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, High, tier)
	assert.Equal(t, 8, h.Cores)

	failing := SourceFunc(func() (Hints, error) {
		return Hints{}, fmt.Errorf("webgl2: %w", ErrUnsupported)
	})
	_, _, err = Detect(failing, nil)
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, _, err = Detect(nil, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}
