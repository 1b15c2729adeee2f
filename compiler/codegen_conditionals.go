package compiler

import "fmt"

// ifBlock compiles each branch into its own construction function and wires
// them to an anchor through the ifBlock runtime helper. The condition is
// passed as a thunk so the helper's effect tracks whatever it reads.
func (g *generator) ifBlock(n TemplateNode) []string {
	node := n.(*IfBlock)
	if node.Test == nil {
		g.rep.Errorf(node.Loc(), "if block without a condition")
		return nil
	}

	id := g.nextID()
	anchor := fmt.Sprintf("if_anchor_%d", id)
	g.emit("const %s = %s(\"if\");", anchor, g.use("createPlaceholder"))

	test, _ := g.printExpression(node.Test)

	createIf := fmt.Sprintf("create_if_%d", id)
	g.emit("const %s = () => {\n%s\n};", createIf, indentLines(g.branch(node.Consequent), 1))

	createElse := "null"
	if node.HasAlternate {
		createElse = fmt.Sprintf("create_else_%d", id)
		g.emit("const %s = () => {\n%s\n};", createElse, indentLines(g.branch(node.Alternate), 1))
	}

	g.emitWiring("cleanups.push(%s(%s, () => %s, %s, %s));", g.use("ifBlock"), anchor, test, createIf, createElse)
	return []string{anchor}
}

// branch builds one branch body in its own block scope.
func (g *generator) branch(body []TemplateNode) string {
	g.syms.PushScope(true)
	defer g.syms.PopScope()
	return g.withFrame(func() []string {
		return g.children(body)
	})
}
