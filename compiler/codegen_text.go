package compiler

import "strings"

// textPart is one piece of a text run: literal text or a printed expression.
type textPart struct {
	static string
	code   string
	isExpr bool
}

func (g *generator) text(n TemplateNode) []string {
	return g.textRun([]TemplateNode{n})
}

func (g *generator) mustache(n TemplateNode) []string {
	return g.textRun([]TemplateNode{n})
}

// textRun generates adjacent text and mustache nodes as one text child.
// A run with no reactive reads becomes a fixed string, or a fixed text node
// outside any element; otherwise one text node bound to one derived value.
func (g *generator) textRun(run []TemplateNode) []string {
	var (
		parts    []textPart
		reactive bool
	)
	for _, n := range run {
		switch node := n.(type) {
		case *TextNode:
			parts = append(parts, textPart{static: node.Value})
		case *MustacheTag:
			if node.Expression == nil {
				g.rep.Errorf(node.Loc(), "mustache tag without expression")
				continue
			}
			code, isReactive := g.printExpression(node.Expression)
			reactive = reactive || isReactive
			parts = append(parts, textPart{code: code, isExpr: true})
		}
	}
	if len(parts) == 0 {
		return nil
	}

	if !reactive {
		lit := textLiteral(parts)
		if lit == `""` {
			return nil
		}
		if g.inElement > 0 {
			return []string{lit}
		}
		name := g.varName("text")
		g.emit("const %s = %s(%s);", name, g.use("createTextNode"), lit)
		return []string{name}
	}

	name := g.varName("text")
	g.emit("const %s = %s(\"\");", name, g.use("createTextNode"))
	source := g.derived(textLiteral(parts))
	g.emit("cleanups.push(%s(%s, %s));", g.use("bindText"), name, source)
	return []string{name}
}

// textLiteral joins parts into a string literal, a template literal, or,
// for a lone expression, the expression itself.
func textLiteral(parts []textPart) string {
	hasExpr := false
	for _, p := range parts {
		hasExpr = hasExpr || p.isExpr
	}
	if !hasExpr {
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(p.static)
		}
		return quoteJS(b.String())
	}
	if len(parts) == 1 {
		return parts[0].code
	}

	var b strings.Builder
	b.WriteByte('`')
	for _, p := range parts {
		if p.isExpr {
			b.WriteString("${")
			b.WriteString(p.code)
			b.WriteByte('}')
			continue
		}
		b.WriteString(escapeTemplate(p.static))
	}
	b.WriteByte('`')
	return b.String()
}
