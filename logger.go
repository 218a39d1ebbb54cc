package msdfatlas

import (
	"log/slog"

	"github.com/gogpu/msdfatlas/internal/logging"
)

// SetLogger configures the logger for msdfatlas and all its sub-packages.
// By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore silent output.
//
// Log levels used:
//   - [slog.LevelDebug]: atlas growth, generator resize and rearrange
//   - [slog.LevelInfo]: atlas built or loaded from the disk cache
//   - [slog.LevelWarn]: glyphs missing from the font, cache I/O failures
//
// Example:
//
//	msdfatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. It never returns nil.
func Logger() *slog.Logger {
	return logging.Logger()
}
