// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/ui/output"
	"go.trai.ch/yalc/internal/ui/style"
	"go.trai.ch/zerr"
)

// leadingKeys are the metadata keys yalc attaches to most errors. They are
// rendered first, in this order, before any other key.
var leadingKeys = []string{"package", "version", "project", "path"}

// metadataIndent aligns metadata lines under the text after the level marker.
const metadataIndent = "       "

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	return newLogger()
}

func newLogger() *Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetQuiet suppresses informational messages. Warnings and errors are still written.
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.level.Set(slog.LevelWarn)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = newConsoleHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its chain of causes.
// JSON records carry the outermost message, the metadata of the whole chain
// as attributes and the cause messages under "causes".
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)
	if !l.jsonMode {
		l.logger.Error(formatErrorEntries(entries))
		return
	}

	msg := entries[0].Message
	if msg == "" {
		msg = err.Error()
	}
	l.logger.Error(msg, errorAttrs(err, entries)...)
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the zerr chain. A plain error ends the walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		zErr, ok := current.(*zerr.Error)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entries = append(entries, ErrorEntry{Message: zErr.Message(), Metadata: zErr.Metadata()})
		current = errors.Unwrap(current)
	}
	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		parts := strings.Split(entry.Message, "\n")
		indent := "      "
		switch i {
		case 0:
			indent = metadataIndent
			lines = append(lines, "Error: "+parts[0])
		case 1:
			lines = append(lines, "", "  Caused by:", "    "+style.Arrow+" "+parts[0])
		default:
			lines = append(lines, "    "+style.Arrow+" "+parts[0])
		}
		for _, p := range parts[1:] {
			lines = append(lines, indent+p)
		}
		for _, k := range metadataKeys(entry.Metadata) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}

// errorAttrs flattens the chain metadata. Outer links win on repeated keys.
func errorAttrs(err error, entries []ErrorEntry) []any {
	meta := map[string]any{}
	for i := len(entries) - 1; i >= 0; i-- {
		for k, v := range entries[i].Metadata {
			meta[k] = v
		}
	}

	attrs := []any{slog.String("error", err.Error())}
	for _, k := range metadataKeys(meta) {
		attrs = append(attrs, slog.Any(k, meta[k]))
	}
	if len(entries) > 1 {
		causes := make([]string, 0, len(entries)-1)
		for _, e := range entries[1:] {
			causes = append(causes, e.Message)
		}
		attrs = append(attrs, slog.Any("causes", causes))
	}
	return attrs
}

// metadataKeys orders keys with leadingKeys first and the rest sorted.
func metadataKeys(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for _, k := range leadingKeys {
		if _, ok := meta[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(meta))
	for k := range meta {
		if !slices.Contains(leadingKeys, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// consoleHandler writes one colored block per record: a level marker, the
// message, then every attribute on its own indented line.
type consoleHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &consoleHandler{out: output.New(w), level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	color := termenv.RGBColor(string(style.Slate))
	switch {
	case r.Level >= slog.LevelError:
		b.WriteString(style.Cross + " ")
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		b.WriteString(style.Warning + " ")
		color = termenv.RGBColor(string(style.Yellow))
	}
	b.WriteString(r.Message)

	meta := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		meta[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		meta[h.prefix+a.Key] = a.Value.Any()
		return true
	})
	for _, k := range metadataKeys(meta) {
		fmt.Fprintf(&b, "\n%s%s: %v", metadataIndent, k, meta[k])
	}

	_, err := h.out.WriteString(h.out.String(b.String()).Foreground(color).String() + "\n")
	return err
}

// WithAttrs qualifies the attributes with the current group before storing them.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
