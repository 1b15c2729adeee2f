//go:build !wasm

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vcrobe/anatomique/compiler"
	"github.com/vcrobe/anatomique/config"
)

const helloAST = `{
  "source": "<h1>Hello</h1>",
  "customAST": {"content": {"html": {"type": "Element", "name": "h1",
    "children": [{"type": "Text", "data": "Hello"}]}}}
}`

const brokenAST = `{
  "source": "<p>\n  <Portal/>\n</p>",
  "customAST": {"content": {"html": {"type": "Element", "name": "p", "children": [
    {"type": "Portal", "loc": {"start": {"line": 2, "column": 3}}}
  ]}}}
}`

// newTestBuilder returns a builder writing into a temporary output
// directory, with its report captured in a file.
func newTestBuilder(t *testing.T) (*builder, string, *os.File) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutDir = filepath.Join(dir, "dist")

	report, err := os.CreateTemp(dir, "report")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { report.Close() })

	b := &builder{
		session: &session{cfg: cfg, mode: compiler.ModeClass, logger: slog.New(slog.DiscardHandler)},
		out:     newPrinter(report),
	}
	return b, dir, report
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readReport(t *testing.T, f *os.File) string {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// TestBuild_WritesModulesAndShell verifies a successful build writes the
// module, the runtime shim and the page.
func TestBuild_WritesModulesAndShell(t *testing.T) {
	// Arrange
	b, dir, report := newTestBuilder(t)
	input := writeInput(t, dir, "hello-world.ast", helloAST)

	// Act
	built, err := b.run(context.Background(), []string{input})

	// Assert
	if err != nil {
		t.Fatalf("Build failed: %v\n%s", err, readReport(t, report))
	}
	if len(built) != 1 {
		t.Fatalf("Expected 1 built input, got %v", built)
	}

	module, err := os.ReadFile(filepath.Join(b.cfg.OutDir, "hello-world.js"))
	if err != nil {
		t.Fatalf("Expected the module to be written: %v", err)
	}
	if !strings.Contains(string(module), "export class HelloWorldComponent") {
		t.Errorf("Unexpected module:\n%s", module)
	}

	shim, err := os.ReadFile(filepath.Join(b.cfg.OutDir, "runtime.js"))
	if err != nil || string(shim) != compiler.RuntimeShim() {
		t.Errorf("Expected runtime.js to hold the shim (%v)", err)
	}

	page, err := os.ReadFile(filepath.Join(b.cfg.OutDir, "index.html"))
	if err != nil {
		t.Fatalf("Expected index.html: %v", err)
	}
	if !strings.Contains(string(page), "new HelloWorldComponent().mount(target);") {
		t.Errorf("Expected the page to mount the component:\n%s", page)
	}
	if !strings.Contains(readReport(t, report), "built 1 component(s)") {
		t.Errorf("Expected a success line, got %q", readReport(t, report))
	}
}

// TestBuild_FailureWritesNothing verifies diagnostics are reported with
// context and no files are written.
func TestBuild_FailureWritesNothing(t *testing.T) {
	b, dir, report := newTestBuilder(t)
	writeInput(t, dir, "hello.ast", helloAST)
	writeInput(t, dir, "broken.ast", brokenAST)

	_, err := b.run(context.Background(), []string{dir})

	if !errors.Is(err, ErrBuildFailed) {
		t.Fatalf("Expected ErrBuildFailed, got %v", err)
	}
	if _, err := os.Stat(b.cfg.OutDir); !os.IsNotExist(err) {
		t.Errorf("Expected no output directory, got %v", err)
	}

	out := readReport(t, report)
	for _, want := range []string{
		"broken.ast:2:3: error: unsupported AST node type encountered: 'Portal'",
		">    2 |   <Portal/>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}
}

// TestBuild_StrictRejectsWarnings fails the build on warnings.
func TestBuild_StrictRejectsWarnings(t *testing.T) {
	b, dir, _ := newTestBuilder(t)
	b.cfg.Strict = true
	input := writeInput(t, dir, "widget.ast", `{"customAST": {"content": {"html": {"type": "Element", "name": "Widget"}}}}`)

	if _, err := b.run(context.Background(), []string{input}); !errors.Is(err, ErrBuildFailed) {
		t.Errorf("Expected strict mode to fail on warnings, got %v", err)
	}
}

// TestBuild_DuplicateOutputNames rejects inputs that would overwrite each other.
func TestBuild_DuplicateOutputNames(t *testing.T) {
	b, dir, _ := newTestBuilder(t)
	a := writeInput(t, dir, "card.ast", helloAST)
	c := writeInput(t, dir, "card.json", helloAST)

	_, err := b.run(context.Background(), []string{a, c})

	if err == nil || !strings.Contains(err.Error(), "both compile to card.js") {
		t.Errorf("Expected a duplicate name error, got %v", err)
	}
}
