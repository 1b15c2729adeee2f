package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultRuntimeImport is the module specifier generated code imports helpers from.
const DefaultRuntimeImport = "./runtime.js"

// Options configures one Transpiler.
type Options struct {
	// Name is the component name; the class is emitted as <Name>Component.
	Name string
	Mode Mode
	// RuntimeImport overrides DefaultRuntimeImport.
	RuntimeImport string
	// Logger receives each diagnostic as it is reported. Nil uses slog.Default().
	Logger *slog.Logger
}

// Output is one successfully emitted module.
type Output struct {
	Name        string
	Code        string
	Helpers     []string
	Diagnostics []Diagnostic
}

// Transpiler turns a decoded tri-AST into a JavaScript module. It owns its
// reporter, which is cleared at the start of every run, and must not be
// shared between goroutines.
type Transpiler struct {
	opts     Options
	reporter *Reporter
}

// New returns a Transpiler for opts.
func New(opts Options) *Transpiler {
	if opts.Name == "" {
		opts.Name = "App"
	}
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = DefaultRuntimeImport
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Transpiler{
		opts:     opts,
		reporter: NewReporter(opts.Logger.With("component", opts.Name)),
	}
}

// Diagnostics returns what the last run reported, errors first.
func (t *Transpiler) Diagnostics() []Diagnostic { return t.reporter.Diagnostics() }

// Transpile runs one full pass. Node-level problems are reported and the
// pass continues; if any error was reported, no output is produced and the
// returned error is a *DiagnosticsError.
func (t *Transpiler) Transpile(root *Root) (*Output, error) {
	t.reporter.Clear()

	if root == nil {
		t.reporter.Errorf(nil, "root AST object is nil")
		return nil, t.failure()
	}

	// Step 1: Declare script bindings so template expressions resolve.
	syms := NewSymbolTable()
	info := analyzeScript(syms, root.Script)

	g := newGenerator(syms, t.reporter)

	// Step 2: Style sheets are recognized but not transpiled.
	if root.Style != nil {
		switch s := root.Style.(type) {
		case *Unimplemented:
			t.reporter.Warnf(s.Loc(), "transpilation for CSS AST node type '%s' not yet implemented", s.Type)
		case *Unknown:
			t.reporter.Errorf(s.Loc(), "unsupported CSS AST node type '%s'", s.Type)
		}
	}

	// Step 3: Print the script with reactive reads rewritten.
	script := ""
	if root.Script != nil {
		script = g.pr.statementLines(root.Script.Body)
	}

	// Step 4: Generate the template into the root frame.
	var roots []string
	if root.Template != nil {
		roots = g.children(root.Template.Children)
	}

	if syms.Depth() != 1 {
		panic(fmt.Sprintf("compiler: scope stack unbalanced after generation (depth %d)", syms.Depth()))
	}

	// Step 5: Refuse emission if anything went wrong.
	if t.reporter.HasErrors() {
		return nil, t.failure()
	}

	code := assemble(assembly{
		name:    t.opts.Name,
		mode:    t.opts.Mode,
		runtime: t.opts.RuntimeImport,
		script:  script,
		root:    g.frame,
		roots:   roots,
		info:    info,
		helpers: g.helpers,
	})

	return &Output{
		Name:        t.opts.Name,
		Code:        code,
		Helpers:     importList(g.helpers),
		Diagnostics: t.reporter.Diagnostics(),
	}, nil
}

func (t *Transpiler) failure() error {
	return &DiagnosticsError{Name: t.opts.Name, Diagnostics: t.reporter.Diagnostics()}
}

// CompileFile reads, decodes and transpiles one input file. opts.Name
// defaults to the PascalCase form of the file's base name.
func CompileFile(path string, opts Options) (*Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if opts.Name == "" {
		opts.Name = ComponentName(path)
	}
	out, err := New(opts).Transpile(root)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", path, err)
	}
	return out, nil
}

// ComponentName derives a PascalCase component name from a file path:
// "todo-list.ast" becomes "TodoList".
func ComponentName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteByte('_')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "App"
	}
	return b.String()
}
