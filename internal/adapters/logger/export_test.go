package logger

import (
	"io"
	"log/slog"
)

// Error formatting helpers exported for white-box testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// NewConsoleHandler exposes the pretty handler used outside JSON mode.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return newConsoleHandler(w, opts)
}
