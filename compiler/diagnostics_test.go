//go:build !wasm

package compiler

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestReporter_ErrorsFirst verifies ordering, the emission gate and Clear.
func TestReporter_ErrorsFirst(t *testing.T) {
	// Arrange
	rep := NewReporter(nil)

	// Act: Interleave warnings and errors
	rep.Warnf(nil, "first warning")
	rep.Errorf(&Location{Line: 3, Column: 7}, "first error: %s", "bad")
	rep.Warnf(nil, "second warning")
	rep.Errorf(nil, "second error")

	// Assert: Errors come first, each group in report order
	var got []string
	for _, d := range rep.Diagnostics() {
		got = append(got, d.String())
	}
	want := []string{
		"error: first error: bad (line 3, column 7)",
		"error: second error",
		"warning: first warning",
		"warning: second warning",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diagnostics mismatch (-want +got):\n%s", diff)
	}
	if !rep.HasErrors() || !rep.HasWarnings() {
		t.Error("Expected both errors and warnings")
	}

	rep.Clear()
	if rep.HasErrors() || rep.HasWarnings() || len(rep.Diagnostics()) != 0 {
		t.Error("Expected Clear to drop everything")
	}
}

// TestReporter_LiteralPercent checks that a message without arguments is not
// treated as a format string.
func TestReporter_LiteralPercent(t *testing.T) {
	rep := NewReporter(nil)
	rep.Warnf(nil, "100% done")
	if got := rep.Diagnostics()[0].Message; got != "100% done" {
		t.Errorf("Expected literal message, got %q", got)
	}
}

// TestReporter_EchoesToLogger verifies each diagnostic is logged with its position.
func TestReporter_EchoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(slog.New(slog.NewTextHandler(&buf, nil)))

	rep.Errorf(&Location{Line: 2, Column: 5}, "broken")

	out := buf.String()
	for _, want := range []string{"level=ERROR", "msg=broken", "line=2", "column=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got %q", want, out)
		}
	}
}

// TestDiagnosticsError_Unwrap checks the error summary and sentinel.
func TestDiagnosticsError_Unwrap(t *testing.T) {
	err := error(&DiagnosticsError{
		Name: "Counter",
		Diagnostics: []Diagnostic{
			{Level: LevelError, Message: "cannot assign to derived value 'double'"},
			{Level: LevelWarning, Message: "ignored"},
		},
	})

	if !errors.Is(err, ErrCompilationFailed) {
		t.Error("Expected DiagnosticsError to wrap ErrCompilationFailed")
	}
	want := "Counter: 1 error(s)\n  error: cannot assign to derived value 'double'"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
