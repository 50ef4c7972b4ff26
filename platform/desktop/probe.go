//go:build !js

package desktop

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/backdrop/rt/probe"
)

// Probe reads adapter limits from a throwaway WebGPU instance and host facts from the
// operating system. A missing adapter is reported as an ordinary error, so the
// system falls back to the low tier instead of going inert.
type Probe struct{}

func (Probe) Hints() (probe.Hints, error) {
	h := probe.Hints{
		Cores:          runtime.NumCPU(),
		DeviceMemoryGB: totalMemoryGB(),
	}

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return h, fmt.Errorf("desktop: webgpu instance unavailable")
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return h, fmt.Errorf("desktop: request adapter: %w", err)
	}
	defer adapter.Release()

	limits := adapter.GetLimits()
	h.MaxTextureSize = int(limits.Limits.MaxTextureDimension2D)
	info := adapter.GetInfo()
	h.Renderer = fmt.Sprintf("%s (%v, %v)", info.Name, info.AdapterType, info.BackendType)
	return h, nil
}

var _ probe.Source = Probe{}
