package compiler

import (
	"fmt"
	"strings"
)

// elementBuild accumulates an element's construction call while its
// attributes are visited.
type elementBuild struct {
	node  *Element
	name  string
	attrs []string
	// after holds statements that need the constructed element.
	after []string
}

func (el *elementBuild) setAttr(key, value string) {
	el.attrs = append(el.attrs, objectKey(key)+": "+value)
}

func (el *elementBuild) addAfter(format string, args ...any) {
	el.after = append(el.after, fmt.Sprintf(format, args...))
}

func (g *generator) fragment(n TemplateNode) []string {
	return g.children(n.(*Fragment).Children)
}

func (g *generator) element(n TemplateNode) []string {
	node := n.(*Element)
	if node.Name == "" {
		g.rep.Errorf(node.Loc(), "element without a tag name")
		return nil
	}
	validateTagName(g.rep, node)

	el := &elementBuild{node: node, name: g.varName(node.Name)}
	for _, a := range node.Attributes {
		if a == nil {
			continue
		}
		rule, ok := attributeRules[a.Kind()]
		if !ok {
			g.rep.Errorf(a.Loc(), "no generation rule for attribute node %s", a.Kind())
			continue
		}
		rule(g, el, a)
	}

	g.inElement++
	kids := g.children(node.Children)
	g.inElement--

	attrs := "{}"
	if len(el.attrs) > 0 {
		attrs = "{ " + strings.Join(el.attrs, ", ") + " }"
	}
	g.emit("const %s = %s(%s, %s, [%s]);", el.name, g.use("createElement"), quoteJS(node.Name), attrs, strings.Join(kids, ", "))
	for _, stmt := range el.after {
		g.emit("%s", stmt)
	}
	return []string{el.name}
}

func (g *generator) comment(TemplateNode) []string { return nil }

func (g *generator) unimplemented(n TemplateNode) []string {
	u := n.(*Unimplemented)
	g.rep.Warnf(u.Loc(), "transpilation for node type '%s' not yet implemented", u.Type)
	name := g.varName("placeholder")
	g.emit("const %s = %s(%s);", name, g.use("createPlaceholder"), quoteJS("unimplemented: "+u.Type))
	return []string{name}
}

func (g *generator) unknown(n TemplateNode) []string {
	u := n.(*Unknown)
	g.rep.Errorf(u.Loc(), "unsupported AST node type encountered: '%s'; this indicates a grammar or AST generation issue", u.Type)
	return nil
}
