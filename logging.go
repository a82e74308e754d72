package backplane

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// Logger is the logger type this package logs through: generic over
// logiface's backend-agnostic Event interface, exactly the type parameter
// github.com/joeycumines/logiface's own consumers use directly (e.g. a
// *stumpy.Event, a zerolog adapter, or any other logiface backend the
// caller wires up). A nil *Logger is a documented no-op (see
// logiface.Logger's "safe to call on a nil receiver" contract), so the
// package works with zero configuration.
type Logger = logiface.Logger[logiface.Event]

var globalLogger struct {
	sync.RWMutex
	logger *Logger
}

// SetLogger installs the package-wide default structured logger, used by
// any Device constructed without an explicit [WithLogger] option. Passing
// nil restores the (silent) default.
func SetLogger(l *Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = l
}

func getGlobalLogger() *Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

// logState tracks the per-Device logger override. Its seq counter is not
// incremented or read anywhere in this package.
type logState struct {
	logger *Logger
	seq    atomic.Uint64
}

func (s *logState) get() *Logger {
	if s.logger != nil {
		return s.logger
	}
	return getGlobalLogger()
}
