package compiler

import (
	"fmt"
	"strings"
)

// eachBlock compiles the body into a per-item construction function and
// wires it to an anchor through the each runtime helper. An optional key
// expression is compiled into a key function evaluated in the item scope.
func (g *generator) eachBlock(n TemplateNode) []string {
	node := n.(*EachBlock)
	if node.Expression == nil {
		g.rep.Errorf(node.Loc(), "each block without an iterable expression")
		return nil
	}

	id := g.nextID()
	anchor := fmt.Sprintf("each_anchor_%d", id)
	g.emit("const %s = %s(\"each\");", anchor, g.use("createPlaceholder"))

	list, _ := g.printExpression(node.Expression)

	item := node.Item
	if item == nil {
		item = &Identifier{Name: "item"}
	}
	index := node.Index
	if index == "" {
		index = fmt.Sprintf("index_%d", id)
	}

	g.syms.PushScope(true)
	for _, name := range patternNames(item) {
		g.syms.Declare(name.Name, Declaration{Kind: BindingEachItem, Node: node})
	}
	g.syms.Declare(index, Declaration{Kind: BindingEachItem, Node: node})

	params := "(" + g.pr.pattern(item) + ", " + index + ")"

	render := fmt.Sprintf("render_item_%d", id)
	body := g.withFrame(func() []string {
		return g.children(node.Body)
	})
	g.emit("const %s = %s => {\n%s\n};", render, params, indentLines(body, 1))

	args := []string{anchor, "() => " + list, render}
	if node.Key != nil {
		key, _ := g.printExpression(node.Key)
		// Items without a declared index may be reused at a new position.
		args = append(args, params+" => "+key, fmt.Sprint(node.Index != ""))
	}
	g.syms.PopScope()

	g.emitWiring("cleanups.push(%s(%s));", g.use("each"), strings.Join(args, ", "))
	return []string{anchor}
}
