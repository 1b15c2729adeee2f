//go:build !(js && wasm)

package console

import (
	"io"
	"log/slog"
	"os"
)

// NewHandler writes text records to stderr.
func NewHandler(level slog.Leveler) slog.Handler {
	return NewWriterHandler(os.Stderr, level)
}

// NewWriterHandler writes text records to w. A nil w discards.
func NewWriterHandler(w io.Writer, level slog.Leveler) slog.Handler {
	if w == nil {
		return discard{}
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
