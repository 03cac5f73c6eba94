package stm

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// pkgLogger is the ambient logger used for commit/abort/fatal tracing.
// Modeled on _examples/Jekaa-go-mvcc-map/mvcc/options.go's config.logger:
// a quiet default (warnings and above, to stderr) that callers can
// replace wholesale with SetLogger.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// SetLogger replaces the package-wide logger used for commit tracing
// and the journal's default sink. Safe to call concurrently with
// running transactions.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	pkgLogger.Store(l)
}

func packageLogger() *slog.Logger { return pkgLogger.Load() }
