// Package logging holds the structured logger used by the containers and codecs.
//
// The default logger discards everything. Hosts install their own with SetDefault,
// or hand one to a binary codec with encoding.WithLogger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger with helpers for container and codec events.
type Logger struct {
	*slog.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(Noop())
}

// New creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at Info level is used.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewText creates a Logger that writes human-readable logs to stderr.
func NewText(level slog.Level) *Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSON creates a Logger that writes JSON logs to stderr.
func NewJSON(level slog.Level) *Logger {
	return New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the package-level logger. A nil logger restores the no-op logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = Noop()
	}
	defaultLogger.Store(l)
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.With("component", name)}
}

// LogOutOfBounds records a rejected index access.
func (l *Logger) LogOutOfBounds(op string, index, length int) {
	l.Debug("index overflows container", "op", op, "index", index, "length", length)
}

// LogMalformed records input rejected by a decoder.
func (l *Logger) LogMalformed(codec string, input string, err error) {
	l.Warn("decode failed", "codec", codec, "input", input, "error", err)
}

// DebugEnabled reports whether Debug records would be emitted. Decoders check it
// once per call before logging per-element progress.
func (l *Logger) DebugEnabled() bool {
	return l.Enabled(context.Background(), slog.LevelDebug)
}

// LogDecodeHeader records the kind and count read from an encoded header.
func (l *Logger) LogDecodeHeader(codec string, kind fmt.Stringer, count int) {
	l.Debug("header decoded", "codec", codec, "kind", kind.String(), "count", count)
}

// LogDecodeElement records one decoded element.
func (l *Logger) LogDecodeElement(codec string, index int, value string) {
	l.Debug("element decoded", "codec", codec, "index", index, "value", value)
}
