//go:build !wasm

package compiler

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "rewrite testdata golden sections")

// goldenCase is one testdata/*.txtar archive. The comment carries
// "name:" and "mode:" lines; input.json is decoded and compiled, and the
// result is compared with output.js or, when the run fails, diagnostics.
type goldenCase struct {
	path    string
	archive *txtar.Archive
	name    string
	mode    Mode
}

func loadGolden(t *testing.T, path string) goldenCase {
	t.Helper()
	a, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	gc := goldenCase{path: path, archive: a}
	for _, line := range strings.Split(string(a.Comment), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "name":
			gc.name = strings.TrimSpace(value)
		case "mode":
			if gc.mode, err = ParseMode(strings.TrimSpace(value)); err != nil {
				t.Fatalf("%s: %v", path, err)
			}
		}
	}
	return gc
}

func (gc goldenCase) file(name string) ([]byte, bool) {
	for _, f := range gc.archive.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

func (gc goldenCase) set(name string, data []byte) {
	for i, f := range gc.archive.Files {
		if f.Name == name {
			gc.archive.Files[i].Data = data
			return
		}
	}
	gc.archive.Files = append(gc.archive.Files, txtar.File{Name: name, Data: data})
}

func formatDiagnostics(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// TestGolden compiles every archive under testdata and compares the result
// with the recorded module or diagnostics. Run with -update to re-record.
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected golden archives in testdata")
	}

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			gc := loadGolden(t, path)
			input, ok := gc.file("input.json")
			if !ok {
				t.Fatalf("%s has no input.json", path)
			}

			root, err := DecodeBytes(input)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			tr := New(Options{Name: gc.name, Mode: gc.mode, Logger: slog.New(slog.DiscardHandler)})
			out, err := tr.Transpile(root)

			var section, got string
			switch {
			case err == nil:
				section, got = "output.js", out.Code
			case errors.Is(err, ErrCompilationFailed):
				section, got = "diagnostics", formatDiagnostics(tr.Diagnostics())
			default:
				t.Fatalf("Unexpected error: %v", err)
			}

			if *update {
				gc.set(section, []byte(got))
				if err := os.WriteFile(path, txtar.Format(gc.archive), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, ok := gc.file(section)
			if !ok {
				t.Fatalf("%s has no %s section (compile error: %v)", path, section, err)
			}
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", section, diff)
			}
		})
	}
}
