//go:build !wasm

package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDiscover finds matching inputs and skips hidden, output and
// node_modules directories as well as project manifests.
func TestDiscover(t *testing.T) {
	// Arrange
	root := t.TempDir()
	files := []string{
		"app.ast",
		"widgets/button.json",
		"widgets/readme.md",
		"package.json",
		"tsconfig.json",
		"node_modules/lib/index.json",
		".cache/stale.ast",
		"dist/old.ast",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Act
	got, err := Discover(root, []string{"*.ast", "*.json"}, filepath.Join(root, "dist"))

	// Assert
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "app.ast"),
		filepath.Join(root, "widgets", "button.json"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

// TestDiscover_BadPattern rejects malformed globs up front.
func TestDiscover_BadPattern(t *testing.T) {
	if _, err := Discover(t.TempDir(), []string{"[a-"}, ""); err == nil {
		t.Error("Expected an error for a malformed pattern")
	}
}

// TestOutputName swaps the extension for .js.
func TestOutputName(t *testing.T) {
	if got := OutputName("src/todo-list.ast"); got != "todo-list.js" {
		t.Errorf("Expected todo-list.js, got %q", got)
	}
}
