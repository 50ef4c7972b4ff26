// Package probe decides the quality tier of the host from a few device hints.
package probe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gekko3d/backdrop/rt/core"
)

// ErrUnsupported means no graphics context could be created on this host.
var ErrUnsupported = errors.New("probe: graphics context unavailable")

type Tier int

const (
	Low Tier = iota
	Medium
	High
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ParseTier accepts the names returned by Tier.String, case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Low, fmt.Errorf("probe: unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Hints are what the host reports about itself. Zero values mean unknown.
type Hints struct {
	Mobile         bool
	DeviceMemoryGB float64
	Cores          int
	MaxTextureSize int
	Renderer       string
}

const assumedMemoryGB = 4

// Classify maps hints to a tier. Unknown memory counts as 4 GB.
func Classify(h Hints) Tier {
	mem := h.DeviceMemoryGB
	if mem <= 0 {
		mem = assumedMemoryGB
	}
	switch {
	case h.Mobile || mem < 4 || h.MaxTextureSize < 2048:
		return Low
	case mem >= 8 && h.MaxTextureSize >= 4096:
		return High
	default:
		return Medium
	}
}

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}

// Source reports device hints. It returns ErrUnsupported (possibly wrapped) when no
// graphics context can be created.
type Source interface {
	Hints() (Hints, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Hints, error)

func (f SourceFunc) Hints() (Hints, error) { return f() }

// Static is a Source that always reports the same hints.
type Static Hints

func (s Static) Hints() (Hints, error) { return Hints(s), nil }

// Detect queries src and classifies the result.
func Detect(src Source, logger core.Logger) (Tier, Hints, error) {
	logger = core.OrNop(logger)
	if src == nil {
		return Low, Hints{}, fmt.Errorf("probe: no source: %w", ErrUnsupported)
	}
	h, err := src.Hints()
	if err != nil {
		logger.Warnf("capability probe failed: %v", err)
		return Low, h, err
	}
	tier := Classify(h)
	logger.Infof("capability probe: tier=%s mobile=%t memory=%.1fGB cores=%d maxTexture=%d renderer=%q",
		tier, h.Mobile, h.DeviceMemoryGB, h.Cores, h.MaxTextureSize, h.Renderer)
	return tier, h, nil
}
