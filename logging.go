package backdrop

import "github.com/gekko3d/backdrop/rt/core"

type Logger = core.Logger

type DefaultLogger = core.DefaultLogger

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return core.NewDefaultLogger(prefix, debug)
}

func NewNopLogger() Logger { return core.NewNopLogger() }
