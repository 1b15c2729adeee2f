package compiler

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RuntimeGlobal is where the wasm runtime publishes its helpers.
const RuntimeGlobal = "__anatomique"

// RuntimeShim returns the runtime.js module generated code imports from.
// It re-exports the helpers the wasm runtime installed on globalThis, so it
// must be imported after the runtime has started.
func RuntimeShim() string {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "const rt = globalThis[%s];\n", quoteJS(RuntimeGlobal))
	b.WriteString("if (!rt) {\n")
	b.WriteString("  throw new Error(\"anatomique runtime is not loaded; start runtime.wasm before importing components\");\n")
	b.WriteString("}\n\n")
	for _, name := range runtimeExports {
		fmt.Fprintf(&b, "export const %s = rt[%s];\n", name, quoteJS(name))
	}
	return b.String()
}

// ShellOptions describes the page HTMLShell generates.
type ShellOptions struct {
	Title        string
	AppRootID    string
	Module       string // e.g. "./todo-list.js"
	Component    string // component name, without the Component suffix
	Mode         Mode
	RuntimeFile  string
	WasmExecFile string
}

// HTMLShell renders an index.html that starts the wasm runtime, imports the
// component module and mounts it into the app root.
func HTMLShell(opts ShellOptions) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"},
	))
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: opts.Title})
	head.AppendChild(title)
	head.AppendChild(element(atom.Script, html.Attribute{Key: "src", Val: "./" + opts.WasmExecFile}))

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(element(atom.Div, html.Attribute{Key: "id", Val: opts.AppRootID}))

	boot := element(atom.Script, html.Attribute{Key: "type", Val: "module"})
	boot.AppendChild(&html.Node{Type: html.TextNode, Data: bootScript(opts)})
	body.AppendChild(boot)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render HTML shell: %w", err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func bootScript(opts ShellOptions) string {
	var b strings.Builder
	b.WriteString("\nconst go = new Go();\n")
	fmt.Fprintf(&b, "const { instance } = await WebAssembly.instantiateStreaming(fetch(%s), go.importObject);\n", quoteJS("./"+opts.RuntimeFile))
	b.WriteString("go.run(instance);\n")
	fmt.Fprintf(&b, "const target = document.getElementById(%s);\n", quoteJS(opts.AppRootID))
	if opts.Mode == ModeFunction {
		fmt.Fprintf(&b, "const { render } = await import(%s);\n", quoteJS(opts.Module))
		b.WriteString("render(target);\n")
	} else {
		fmt.Fprintf(&b, "const { %sComponent } = await import(%s);\n", opts.Component, quoteJS(opts.Module))
		fmt.Fprintf(&b, "new %sComponent().mount(target);\n", opts.Component)
	}
	return b.String()
}
