package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("backdrop", false, &buf)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("bad %s", "shader")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[backdrop] INFO: shown 2")
	assert.Contains(t, out, "[backdrop] ERROR: bad shader")

	l.SetDebug(true)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible")
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger("", true, &buf)
	child := base.WithPrefix("postfx")

	base.Infof("a")
	child.Debugf("b")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	assert.Equal(t, "INFO: a", lines[0])
	assert.Equal(t, "[postfx] DEBUG: b", lines[1])
}

func TestWithPrefixNests(t *testing.T) {
	var buf bytes.Buffer
	child := NewWriterLogger("backdrop 1234abcd", false, &buf).WithPrefix("particles")

	child.Debugf("hidden")
	child.Warnf("shader failed")

	assert.Equal(t, "[backdrop 1234abcd/particles] WARN: shader failed", strings.TrimSpace(buf.String()))
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	assert.NotNil(t, l)
	l.Errorf("dropped")

	d := NewDefaultLogger("x", false)
	assert.Same(t, d, OrNop(d))
}
