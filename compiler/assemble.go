package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects the shape of the emitted module.
type Mode int

const (
	// ModeClass emits `export class <Name>Component` with mount, update and unmount.
	ModeClass Mode = iota
	// ModeFunction emits `export function render(target)` returning a disposer.
	ModeFunction
)

func (m Mode) String() string {
	if m == ModeFunction {
		return "function"
	}
	return "class"
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "class":
		return ModeClass, nil
	case "function":
		return ModeFunction, nil
	}
	return ModeClass, fmt.Errorf("unknown output mode %q", s)
}

// runtimeExports is the import order of every helper the runtime module exports.
var runtimeExports = []string{
	"$state",
	"$derived",
	"$effect",
	"batch",
	"untrack",
	"onMount",
	"onDestroy",
	"triggerMount",
	"triggerDestroy",
	"createElement",
	"createTextNode",
	"createFragment",
	"createPlaceholder",
	"bindText",
	"bindAttr",
	"bind",
	"ifBlock",
	"each",
}

// scriptExports are runtime names user scripts may call directly.
var scriptExports = map[string]bool{
	"$state":    true,
	"$derived":  true,
	"$effect":   true,
	"batch":     true,
	"untrack":   true,
	"onMount":   true,
	"onDestroy": true,
}

// assembly is everything the assembler stitches together.
type assembly struct {
	name    string
	mode    Mode
	runtime string
	script  string
	root    *frame
	roots   []string
	info    scriptInfo
	helpers map[string]bool
}

const generatedHeader = "// Code generated by anatomique. DO NOT EDIT."

// assemble renders the final module. Callers must have checked the reporter.
func assemble(a assembly) string {
	lifecycle := a.helpers["onMount"] || a.helpers["onDestroy"]
	if lifecycle {
		a.helpers["triggerMount"] = true
		a.helpers["triggerDestroy"] = true
	}
	a.helpers["createFragment"] = true
	if a.mode == ModeClass && len(a.info.States) > 0 {
		a.helpers["batch"] = true
	}

	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "import { %s } from %s;\n", strings.Join(importList(a.helpers), ", "), quoteJS(a.runtime))

	if strings.TrimSpace(a.script) != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(a.script, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch a.mode {
	case ModeFunction:
		writeRenderFunction(&b, a, lifecycle)
	default:
		writeComponentClass(&b, a, lifecycle)
	}
	return b.String()
}

func importList(helpers map[string]bool) []string {
	order := make(map[string]int, len(runtimeExports))
	for i, name := range runtimeExports {
		order[name] = i
	}
	names := make([]string, 0, len(helpers))
	for name := range helpers {
		if _, ok := order[name]; ok {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return order[names[i]] < order[names[j]] })
	return names
}

// mountBody is the shared construction sequence of both output shapes.
func mountBody(a assembly) string {
	var b strings.Builder
	b.WriteString("const cleanups = [];\n")
	for _, line := range a.root.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "const nodes = [%s];\n", strings.Join(a.roots, ", "))
	b.WriteString("target.appendChild(createFragment(nodes));\n")
	for _, line := range a.root.wiring {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeComponentClass(b *strings.Builder, a assembly, lifecycle bool) {
	fmt.Fprintf(b, "export class %sComponent {\n", a.name)
	b.WriteString("  #nodes = [];\n")
	b.WriteString("  #cleanups = [];\n\n")

	b.WriteString("  mount(target) {\n")
	b.WriteString(indentLines(mountBody(a), 2))
	b.WriteString("    this.#nodes = nodes;\n")
	b.WriteString("    this.#cleanups = cleanups;\n")
	if lifecycle {
		b.WriteString("    triggerMount();\n")
	}
	b.WriteString("  }\n\n")

	if len(a.info.States) == 0 {
		b.WriteString("  update(patch) {}\n\n")
	} else {
		b.WriteString("  update(patch) {\n")
		b.WriteString("    batch(() => {\n")
		for _, name := range a.info.States {
			fmt.Fprintf(b, "      if (%s in patch) %s.value = patch[%s];\n", quoteJS(name), name, quoteJS(name))
		}
		b.WriteString("    });\n")
		b.WriteString("  }\n\n")
	}

	b.WriteString("  unmount() {\n")
	if lifecycle {
		b.WriteString("    triggerDestroy();\n")
	}
	b.WriteString("    for (const cleanup of this.#cleanups.splice(0).reverse()) cleanup();\n")
	b.WriteString("    for (const node of this.#nodes.splice(0)) node.remove();\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
}

func writeRenderFunction(b *strings.Builder, a assembly, lifecycle bool) {
	b.WriteString("export function render(target) {\n")
	b.WriteString(indentLines(mountBody(a), 1))
	if lifecycle {
		b.WriteString("  triggerMount();\n")
	}
	b.WriteString("  return () => {\n")
	if lifecycle {
		b.WriteString("    triggerDestroy();\n")
	}
	b.WriteString("    for (const cleanup of cleanups.splice(0).reverse()) cleanup();\n")
	b.WriteString("    for (const node of nodes) node.remove();\n")
	b.WriteString("  };\n")
	b.WriteString("}\n")
}
