// Package obslog is the package-wide structured logger for colcore,
// wrapping go.uber.org/zap the way internal/queryoptimizer/optimizer.go
// uses it in the Lychee-Technology-forma lineage (zap.S().Infow(...)
// sugared calls rather than building per-call Field slices).
package obslog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// SetLogger installs the logger used by the rest of colcore. Passing nil
// restores the no-op logger. Callers (outside this module's scope) own
// constructing a real *zap.Logger; colcore never configures one itself —
// configuration is explicitly out of scope for the core (spec §6).
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugw logs at debug level with structured key-value pairs.
func Debugw(msg string, kv ...any) {
	current().Debugw(msg, kv...)
}

// Infow logs at info level with structured key-value pairs.
func Infow(msg string, kv ...any) {
	current().Infow(msg, kv...)
}

// Warnw logs at warn level with structured key-value pairs.
func Warnw(msg string, kv ...any) {
	current().Warnw(msg, kv...)
}
