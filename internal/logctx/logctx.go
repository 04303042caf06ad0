// Package logctx builds the solver's diagnostic logger, carried over
// from cmd/shell/main.go's zerolog.ConsoleWriter setup so stderr output
// keeps the same human-readable shape the teacher's tools use.
package logctx

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kstatic/klondike-solver/internal/config"
)

// New builds a console logger writing to stderr at cfg.LogLevel. stdout
// is reserved for the one-JSON-record-per-deal output stream; nothing
// in this package ever writes there.
func New(cfg *config.Config) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(cfg.LogLevel).With().Timestamp().Logger()
}
