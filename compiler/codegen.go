package compiler

import (
	"fmt"
	"strings"
)

// templateRule generates code for one template node and returns the child
// expressions it contributes to the enclosing node.
type templateRule func(g *generator, n TemplateNode) []string

// attributeRule folds one attribute into the element being built.
type attributeRule func(g *generator, el *elementBuild, a AttributeNode)

var (
	templateRules  map[Kind]templateRule
	attributeRules map[Kind]attributeRule
)

func init() {
	templateRules = map[Kind]templateRule{
		KindFragment:      (*generator).fragment,
		KindElement:       (*generator).element,
		KindText:          (*generator).text,
		KindMustache:      (*generator).mustache,
		KindComment:       (*generator).comment,
		KindIfBlock:       (*generator).ifBlock,
		KindEachBlock:     (*generator).eachBlock,
		KindUnimplemented: (*generator).unimplemented,
		KindUnknown:       (*generator).unknown,
	}
	attributeRules = map[Kind]attributeRule{
		KindKeyValueAttribute:          (*generator).keyValueAttribute,
		KindBooleanAttribute:           (*generator).booleanAttribute,
		KindBooleanIdentifierAttribute: (*generator).booleanAttribute,
		KindEventHandler:               (*generator).eventHandler,
		KindTwoWayBinding:              (*generator).twoWayBinding,
		KindMustacheAttribute:          (*generator).mustacheAttribute,
		KindUnimplemented:              (*generator).unimplementedAttribute,
		KindUnknown:                    (*generator).unknownAttribute,
	}
}

// frame is the body of one construction function: the component root, an
// if branch, or an each item.
type frame struct {
	lines   []string
	wiring  []string
	derived map[string]string
}

func newFrame() *frame {
	return &frame{derived: make(map[string]string)}
}

// generator walks the template once. It owns the symbol table view used to
// classify expressions and records which runtime helpers the output uses.
type generator struct {
	syms    *SymbolTable
	rep     *Reporter
	pr      *printer
	helpers map[string]bool
	counter int
	frame   *frame
	// inElement counts enclosing elements within the current frame. At zero,
	// children become frame nodes and must be real DOM nodes.
	inElement int
}

func newGenerator(syms *SymbolTable, rep *Reporter) *generator {
	g := &generator{
		syms:    syms,
		rep:     rep,
		helpers: make(map[string]bool),
		frame:   newFrame(),
	}
	g.pr = newPrinter(syms, rep, g.freeIdentifier)
	return g
}

func (g *generator) use(helper string) string {
	g.helpers[helper] = true
	return helper
}

// freeIdentifier records runtime exports referenced by user code.
func (g *generator) freeIdentifier(name string) {
	if scriptExports[name] {
		g.helpers[name] = true
	}
}

func (g *generator) nextID() int {
	g.counter++
	return g.counter
}

func (g *generator) emit(format string, args ...any) {
	g.frame.lines = append(g.frame.lines, fmt.Sprintf(format, args...))
}

func (g *generator) emitWiring(format string, args ...any) {
	g.frame.wiring = append(g.frame.wiring, fmt.Sprintf(format, args...))
}

// visit dispatches one template node through the rule table.
func (g *generator) visit(n TemplateNode) []string {
	if n == nil {
		g.rep.Errorf(nil, "invalid or null template node")
		return nil
	}
	rule, ok := templateRules[n.Kind()]
	if !ok {
		g.rep.Errorf(n.Loc(), "no generation rule for template node %s", n.Kind())
		return nil
	}
	return rule(g, n)
}

// children generates a child list, merging adjacent text runs.
func (g *generator) children(nodes []TemplateNode) []string {
	var (
		out []string
		run []TemplateNode
	)
	flush := func() {
		if len(run) > 0 {
			out = append(out, g.textRun(run)...)
			run = nil
		}
	}
	for _, child := range nodes {
		switch child.(type) {
		case *TextNode, *MustacheTag:
			run = append(run, child)
			continue
		case *CommentBlock:
			continue
		}
		flush()
		out = append(out, g.visit(child)...)
	}
	flush()
	return out
}

// derived returns a frame-local derived value for code, declaring it on first use.
func (g *generator) derived(code string) string {
	if name, ok := g.frame.derived[code]; ok {
		return name
	}
	name := fmt.Sprintf("derived_%d", g.nextID())
	g.frame.derived[code] = name
	g.emit("const %s = %s(() => %s);", name, g.use("$derived"), code)
	g.emit("cleanups.push(%s.dispose);", name)
	return name
}

// printExpression prints e with reactive rewriting and reports whether it
// read any reactive binding.
func (g *generator) printExpression(e Expression) (string, bool) {
	return g.pr.printTracked(e)
}

// withFrame runs build inside a fresh frame and renders it as a
// construction function body returning {nodes, cleanups, mount}.
func (g *generator) withFrame(build func() []string) string {
	outer, depth := g.frame, g.inElement
	g.frame, g.inElement = newFrame(), 0
	roots := build()
	inner := g.frame
	g.frame, g.inElement = outer, depth

	var b strings.Builder
	b.WriteString("const cleanups = [];\n")
	for _, line := range inner.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "const nodes = [%s];\n", strings.Join(roots, ", "))
	if len(inner.wiring) == 0 {
		b.WriteString("return { nodes, cleanups };")
		return b.String()
	}
	b.WriteString("const mount = () => {\n")
	for _, line := range inner.wiring {
		b.WriteString(indentLines(line, 1))
		b.WriteByte('\n')
	}
	b.WriteString("};\n")
	b.WriteString("return { nodes, cleanups, mount };")
	return b.String()
}

// varName builds a unique, valid JavaScript identifier for a generated node.
func (g *generator) varName(prefix string) string {
	var b strings.Builder
	for i, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		b.WriteString("node")
	}
	return fmt.Sprintf("%s_%d", b.String(), g.nextID())
}
