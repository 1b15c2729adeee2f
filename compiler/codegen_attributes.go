package compiler

import (
	"strings"

	"github.com/vcrobe/anatomique/events"
)

// keyValueAttribute handles name="text" and name="text {expr} text".
func (g *generator) keyValueAttribute(el *elementBuild, a AttributeNode) {
	attr := a.(*KeyValueAttribute)
	if attr.Name == "" {
		g.rep.Errorf(attr.Loc(), "attribute without a name on <%s>", el.node.Name)
		return
	}

	var (
		parts    []textPart
		reactive bool
	)
	for _, p := range attr.Parts {
		if p.Expression == nil {
			parts = append(parts, textPart{static: p.Text})
			continue
		}
		code, isReactive := g.printExpression(p.Expression)
		reactive = reactive || isReactive
		parts = append(parts, textPart{code: code, isExpr: true})
	}

	if len(parts) == 0 {
		el.setAttr(attr.Name, `""`)
		return
	}

	// A plain "true"/"false" on a standard boolean attribute is a presence toggle.
	if len(parts) == 1 && !parts[0].isExpr && isBooleanAttribute(attr.Name) {
		switch strings.ToLower(parts[0].static) {
		case "false":
			el.setAttr(attr.Name, "false")
			return
		case "true", "", strings.ToLower(attr.Name):
			el.setAttr(attr.Name, "true")
			return
		}
	}

	value := textLiteral(parts)
	if !reactive {
		el.setAttr(attr.Name, value)
		return
	}
	source := g.derived(value)
	el.addAfter("cleanups.push(%s(%s, %s, %s));", g.use("bindAttr"), el.name, quoteJS(attr.Name), source)
}

// booleanAttribute handles presence attributes and identifier-bound toggles.
func (g *generator) booleanAttribute(el *elementBuild, a AttributeNode) {
	attr := a.(*BooleanAttribute)

	if !attr.Identifier {
		switch attr.Value {
		case "", "true":
			el.setAttr(attr.Name, "true")
			return
		case "false":
			el.setAttr(attr.Name, "false")
			return
		}
		if !isIdentifierName(attr.Value) {
			el.setAttr(attr.Name, "true")
			return
		}
	}

	if !isIdentifierName(attr.Value) {
		g.rep.Errorf(attr.Loc(), "boolean attribute '%s' on <%s> is bound to invalid identifier %q", attr.Name, el.node.Name, attr.Value)
		return
	}

	id := &Identifier{base: attr.base, Name: attr.Value}
	code, reactive := g.printExpression(id)
	if !reactive {
		el.setAttr(attr.Name, "!!"+code)
		return
	}
	source := g.derived("!!" + code)
	el.addAfter("cleanups.push(%s(%s, %s, %s));", g.use("bindAttr"), el.name, quoteJS(attr.Name), source)
}

// eventHandler attaches a listener through an on* property of the attribute object.
// Bare callable references are attached as-is; functions pass through; any
// other expression is wrapped in a zero-argument closure.
func (g *generator) eventHandler(el *elementBuild, a AttributeNode) {
	attr := a.(*EventHandler)
	if attr.Expression == nil {
		g.rep.Errorf(attr.Loc(), "event handler '%s' on <%s> has no expression", attr.Name, el.node.Name)
		return
	}

	name := events.Normalize(attr.Name)
	if name == "" {
		g.rep.Errorf(attr.Loc(), "event handler on <%s> has no event name", el.node.Name)
		return
	}
	if !events.Known(name) {
		if suggestions := events.Suggest(name); len(suggestions) > 0 {
			g.rep.Warnf(attr.Loc(), "unknown event '%s' on <%s>; did you mean '%s'?", name, el.node.Name, strings.Join(suggestions, "', '"))
		} else {
			g.rep.Warnf(attr.Loc(), "unknown event '%s' on <%s>", name, el.node.Name)
		}
	}

	var handler string
	switch expr := attr.Expression.(type) {
	case *ArrowFunctionExpression, *FunctionExpression:
		handler, _ = g.printExpression(expr)
	case *Identifier:
		code, reactive := g.printExpression(expr)
		if reactive {
			handler = "(event) => " + code + "(event)"
		} else {
			handler = code
		}
	default:
		code, _ := g.printExpression(expr)
		handler = "() => " + code
	}
	el.setAttr("on"+name, handler)
}

// twoWayBinding links a $state binding to an input-like property.
func (g *generator) twoWayBinding(el *elementBuild, a AttributeNode) {
	attr := a.(*TwoWayBinding)
	if attr.Expression == nil {
		g.rep.Errorf(attr.Loc(), "two-way binding on <%s> has no expression", el.node.Name)
		return
	}
	id, ok := attr.Expression.(*Identifier)
	if !ok {
		g.rep.Errorf(attr.Loc(), "two-way binding on <%s> must name a variable", el.node.Name)
		return
	}

	prop := attr.Name
	if prop == "" || prop == "bind" {
		prop = "value"
	}
	prop = strings.TrimPrefix(prop, "bind:")

	decl, found := g.syms.ResolveDeclaration(id.Name)
	switch {
	case found && decl.Kind == BindingDerived:
		g.rep.Errorf(attr.Loc(), "cannot bind to derived value '%s'; derived values are read-only", id.Name)
	case found && decl.IsReactive:
		g.use("bind")
		if prop == "value" {
			el.addAfter("cleanups.push(bind(%s, %s));", el.name, id.Name)
		} else {
			el.addAfter("cleanups.push(bind(%s, %s, %s));", el.name, id.Name, quoteJS(prop))
		}
	default:
		g.rep.Warnf(attr.Loc(), "two-way binding on non-reactive variable: %s", id.Name)
		code, _ := g.printExpression(id)
		el.addAfter("%s[%s] = %s;", el.name, quoteJS(prop), code)
	}
}

// mustacheAttribute handles name={expr}.
func (g *generator) mustacheAttribute(el *elementBuild, a AttributeNode) {
	attr := a.(*MustacheAttribute)
	if attr.Expression == nil {
		g.rep.Errorf(attr.Loc(), "mustache attribute '%s' on <%s> has no expression", attr.Name, el.node.Name)
		return
	}
	code, reactive := g.printExpression(attr.Expression)
	if !reactive {
		el.setAttr(attr.Name, code)
		return
	}
	source := g.derived(code)
	el.addAfter("cleanups.push(%s(%s, %s, %s));", g.use("bindAttr"), el.name, quoteJS(attr.Name), source)
}

func (g *generator) unimplementedAttribute(_ *elementBuild, a AttributeNode) {
	u := a.(*Unimplemented)
	g.rep.Warnf(u.Loc(), "transpilation for attribute type '%s' not yet implemented", u.Type)
}

func (g *generator) unknownAttribute(el *elementBuild, a AttributeNode) {
	u := a.(*Unknown)
	g.rep.Errorf(u.Loc(), "unknown attribute type '%s' on <%s>", u.Type, el.node.Name)
}
