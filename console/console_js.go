//go:build js && wasm

package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"syscall/js"
)

// NewHandler forwards records to console.log, console.warn, console.error
// or console.debug by level. Attributes are appended as key=value pairs.
func NewHandler(level slog.Leveler) slog.Handler {
	c := js.Global().Get("console")
	if !c.Truthy() {
		return discard{}
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &browserHandler{console: c, level: level}
}

type browserHandler struct {
	console js.Value
	level   slog.Leveler
	attrs   []slog.Attr
	group   string
}

func (h *browserHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *browserHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Resolve())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	h.console.Call(method(r.Level), b.String())
	return nil
}

func (h *browserHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &n
}

func (h *browserHandler) WithGroup(name string) slog.Handler {
	n := *h
	if n.group != "" {
		name = n.group + "." + name
	}
	n.group = name
	return &n
}
