package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrCompilationFailed is returned (wrapped) whenever a run reported at least one error.
var ErrCompilationFailed = errors.New("compilation failed")

// Level is the severity of a diagnostic.
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one reported issue.
type Diagnostic struct {
	Level    Level
	Message  string
	Location *Location
}

func (d Diagnostic) String() string {
	if d.Location == nil {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, column %d)", d.Level, d.Message, d.Location.Line, d.Location.Column)
}

// Reporter accumulates diagnostics for one compilation run. It is owned by a
// single Transpiler and must be cleared at the start of every run.
type Reporter struct {
	warnings []Diagnostic
	errors   []Diagnostic
	logger   *slog.Logger
}

// NewReporter returns a reporter that echoes every diagnostic to logger.
// A nil logger disables the echo.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report records a diagnostic. It never fails.
func (r *Reporter) Report(level Level, loc *Location, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	d := Diagnostic{Level: level, Message: msg, Location: loc}

	if level == LevelError {
		r.errors = append(r.errors, d)
	} else {
		r.warnings = append(r.warnings, d)
	}

	if r.logger == nil {
		return
	}
	attrs := []slog.Attr{}
	if loc != nil {
		attrs = append(attrs, slog.Int("line", loc.Line), slog.Int("column", loc.Column))
	}
	slogLevel := slog.LevelWarn
	if level == LevelError {
		slogLevel = slog.LevelError
	}
	r.logger.LogAttrs(context.Background(), slogLevel, msg, attrs...)
}

// Errorf reports an error-level diagnostic.
func (r *Reporter) Errorf(loc *Location, format string, args ...any) {
	r.Report(LevelError, loc, format, args...)
}

// Warnf reports a warning-level diagnostic.
func (r *Reporter) Warnf(loc *Location, format string, args ...any) {
	r.Report(LevelWarning, loc, format, args...)
}

// HasErrors is the emission gate.
func (r *Reporter) HasErrors() bool { return len(r.errors) > 0 }

// HasWarnings reports whether any warning was recorded.
func (r *Reporter) HasWarnings() bool { return len(r.warnings) > 0 }

// Clear drops everything reported so far.
func (r *Reporter) Clear() {
	r.warnings = nil
	r.errors = nil
}

// Diagnostics returns errors first, then warnings, each in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.errors)+len(r.warnings))
	out = append(out, r.errors...)
	out = append(out, r.warnings...)
	return out
}

// DiagnosticsError is returned when emission is refused.
type DiagnosticsError struct {
	Name        string
	Diagnostics []Diagnostic
}

func (e *DiagnosticsError) Error() string {
	var b strings.Builder
	errs := 0
	for _, d := range e.Diagnostics {
		if d.Level == LevelError {
			errs++
		}
	}
	if e.Name != "" {
		fmt.Fprintf(&b, "%s: ", e.Name)
	}
	fmt.Fprintf(&b, "%d error(s)", errs)
	for _, d := range e.Diagnostics {
		if d.Level != LevelError {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

func (e *DiagnosticsError) Unwrap() error { return ErrCompilationFailed }
