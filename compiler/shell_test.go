//go:build !wasm

package compiler

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// TestRuntimeShim re-exports every runtime helper from the global.
func TestRuntimeShim(t *testing.T) {
	shim := RuntimeShim()

	if !strings.Contains(shim, `const rt = globalThis["__anatomique"];`) {
		t.Errorf("Expected the runtime global lookup:\n%s", shim)
	}
	for _, name := range runtimeExports {
		want := "export const " + name + ` = rt["` + name + `"];`
		if !strings.Contains(shim, want) {
			t.Errorf("Expected %q in the shim", want)
		}
	}
}

// TestHTMLShell verifies the page boots the runtime and mounts the component.
func TestHTMLShell(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want []string
	}{
		{"class", ModeClass, []string{
			`const { TodoListComponent } = await import("./todo-list.js");`,
			"new TodoListComponent().mount(target);",
		}},
		{"function", ModeFunction, []string{
			`const { render } = await import("./todo-list.js");`,
			"render(target);",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := HTMLShell(ShellOptions{
				Title:        "Todos & more",
				AppRootID:    "app",
				Module:       "./todo-list.js",
				Component:    "TodoList",
				Mode:         tt.mode,
				RuntimeFile:  "runtime.wasm",
				WasmExecFile: "wasm_exec.js",
			})
			if err != nil {
				t.Fatalf("HTMLShell failed: %v", err)
			}

			for _, want := range append(tt.want,
				"<!DOCTYPE html>",
				`<title>Todos &amp; more</title>`,
				`<script src="./wasm_exec.js"></script>`,
				`<div id="app"></div>`,
				`fetch("./runtime.wasm")`,
				`document.getElementById("app")`,
			) {
				if !strings.Contains(page, want) {
					t.Errorf("Expected %q in page:\n%s", want, page)
				}
			}

			// The page must parse back with the boot script intact.
			if _, err := html.Parse(strings.NewReader(page)); err != nil {
				t.Errorf("Generated page does not parse: %v", err)
			}
		})
	}
}
