// Package logging builds the slog loggers used by the markup tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options configures New.
type Options struct {
	// Level is the minimum level that is logged.
	Level slog.Level

	// Color is one of "auto", "always" or "never". Auto enables color only
	// when w is a terminal.
	Color string

	// TimeFormat defaults to time.Kitchen.
	TimeFormat string
}

// New returns a logger writing human-readable records to w.
func New(w io.Writer, opts Options) *slog.Logger {
	if opts.TimeFormat == "" {
		opts.TimeFormat = time.Kitchen
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: opts.TimeFormat,
		NoColor:    !useColor(w, opts.Color),
	}))
}

// ParseLevel maps debug, info, warn and error to a slog level.
// Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
