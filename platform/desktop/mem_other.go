//go:build !linux && !js

package desktop

// totalMemoryGB is unknown off Linux; the classifier then assumes a mid-range machine.
func totalMemoryGB() float64 { return 0 }
