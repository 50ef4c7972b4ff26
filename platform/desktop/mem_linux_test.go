//go:build linux

package desktop

import "testing"

func TestTotalMemoryGB(t *testing.T) {
	if gb := totalMemoryGB(); gb <= 0 {
		t.Errorf("totalMemoryGB() = %v, want > 0 on linux", gb)
	}
}
