// Package console routes structured logs to the right sink: the browser's
// console under js/wasm, stderr everywhere else.
package console

import (
	"context"
	"log/slog"
	"strings"
)

// ParseLevel maps a config value to a slog level. Unknown values are Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New returns a logger over NewHandler(level).
func New(level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(level))
}

// method picks the console method a record is written with.
func method(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l < slog.LevelInfo:
		return "debug"
	}
	return "log"
}

// discard drops everything; used when no console exists.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }
