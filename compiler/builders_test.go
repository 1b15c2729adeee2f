//go:build !wasm

package compiler

// Small constructors for hand-built ASTs in tests.

func ident(name string) *Identifier { return &Identifier{Name: name} }

func num(raw string) *Literal { return &Literal{Raw: raw} }

func strLit(s string) *Literal { return &Literal{Value: s, Raw: quoteJS(s)} }

func call(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

func member(obj Expression, prop string) *MemberExpression {
	return &MemberExpression{Object: obj, Property: ident(prop)}
}

func binary(op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

func assign(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{Operator: "=", Left: left, Right: right}
}

func arrow(params []Expression, body Node) *ArrowFunctionExpression {
	fn := &ArrowFunctionExpression{Params: params}
	switch b := body.(type) {
	case *BlockStatement:
		fn.Body = b
	case Expression:
		fn.Body = b
		fn.ExpressionBody = true
	}
	return fn
}

func exprStmt(e Expression) *ExpressionStatement { return &ExpressionStatement{Expression: e} }

func letDecl(name string, init Expression) *VariableDeclaration {
	return &VariableDeclaration{DeclKind: "let", Declarations: []*VariableDeclarator{{ID: ident(name), Init: init}}}
}

func constDecl(name string, init Expression) *VariableDeclaration {
	return &VariableDeclaration{DeclKind: "const", Declarations: []*VariableDeclarator{{ID: ident(name), Init: init}}}
}

func stateOf(init Expression) *CallExpression { return call(ident(stateConstructor), init) }

func derivedOf(body Expression) *CallExpression {
	return call(ident(derivedConstructor), arrow(nil, body))
}

func fnDecl(name string, body ...Statement) *FunctionDeclaration {
	return &FunctionDeclaration{ID: ident(name), Body: &BlockStatement{Body: body}}
}

func text(s string) *TextNode { return &TextNode{Value: s} }

func mustache(e Expression) *MustacheTag { return &MustacheTag{Expression: e} }

func elem(name string, attrs []AttributeNode, children ...TemplateNode) *Element {
	return &Element{Name: name, Attributes: attrs, Children: children}
}

func program(body ...Statement) *Program { return &Program{Body: body} }

func rootOf(script *Program, children ...TemplateNode) *Root {
	return &Root{Script: script, Template: &Fragment{Children: children}}
}
