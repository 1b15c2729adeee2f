package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Operator precedence levels, loosely following the ECMAScript grammar.
const (
	precSequence = iota + 1
	precAssign
	precConditional
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precUpdate
	precCall
	precNew
	precPrimary
)

var binaryPrecedence = map[string]int{
	"??": precNullish, "||": precOr, "&&": precAnd,
	"|": precBitOr, "^": precBitXor, "&": precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"in": precRelational, "instanceof": precRelational,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

const indentUnit = "  "

// printer renders script ASTs back to JavaScript. Identifiers that resolve to
// reactive bindings are rewritten to `.value` accesses.
type printer struct {
	syms  *SymbolTable
	rep   *Reporter
	depth int

	// reactiveReads counts reactive identifier reads since the last reset.
	reactiveReads int

	// onFree is called for identifiers that resolve to no declaration.
	onFree func(name string)
}

func newPrinter(syms *SymbolTable, rep *Reporter, onFree func(string)) *printer {
	return &printer{syms: syms, rep: rep, onFree: onFree}
}

// printTracked prints e and reports whether any reactive binding was read.
func (p *printer) printTracked(e Expression) (string, bool) {
	saved := p.reactiveReads
	p.reactiveReads = 0
	code := p.expr(e, precSequence)
	reactive := p.reactiveReads > 0
	p.reactiveReads += saved
	return code, reactive
}

func (p *printer) indent() string { return strings.Repeat(indentUnit, p.depth) }

func precedenceOf(e Expression) int {
	switch n := e.(type) {
	case *SequenceExpression:
		return precSequence
	case *AssignmentExpression, *ArrowFunctionExpression:
		return precAssign
	case *ConditionalExpression:
		return precConditional
	case *BinaryExpression:
		return binaryPrecedence[n.Operator]
	case *LogicalExpression:
		return binaryPrecedence[n.Operator]
	case *UnaryExpression:
		return precUnary
	case *UpdateExpression:
		return precUpdate
	case *CallExpression, *MemberExpression:
		return precCall
	case *NewExpression:
		return precNew
	}
	return precPrimary
}

func (p *printer) expr(e Expression, minPrec int) string {
	if e == nil {
		return "undefined"
	}
	code := p.exprInner(e)
	if precedenceOf(e) < minPrec {
		return "(" + code + ")"
	}
	return code
}

func (p *printer) exprInner(e Expression) string {
	switch n := e.(type) {
	case *Identifier:
		return p.identifier(n)
	case *Literal:
		return n.Raw
	case *TemplateLiteral:
		var b strings.Builder
		b.WriteByte('`')
		for i, q := range n.Quasis {
			b.WriteString(q.Raw)
			if i < len(n.Expressions) {
				b.WriteString("${")
				b.WriteString(p.expr(n.Expressions[i], precSequence))
				b.WriteByte('}')
			}
		}
		b.WriteByte('`')
		return b.String()
	case *ArrayExpression:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			if el != nil {
				parts[i] = p.expr(el, precAssign)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ObjectExpression:
		if len(n.Properties) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(n.Properties))
		for _, prop := range n.Properties {
			parts = append(parts, p.property(prop))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *SpreadElement:
		return "..." + p.expr(n.Argument, precAssign)
	case *MemberExpression:
		obj := p.expr(n.Object, precCall)
		if _, isNum := n.Object.(*Literal); isNum && !n.Computed && !strings.ContainsAny(obj, ".\"'`") {
			obj = "(" + obj + ")"
		}
		if n.Computed {
			dot := ""
			if n.Optional {
				dot = "?."
			}
			return obj + dot + "[" + p.expr(n.Property, precSequence) + "]"
		}
		dot := "."
		if n.Optional {
			dot = "?."
		}
		return obj + dot + propertyName(n.Property)
	case *CallExpression:
		callee := p.expr(n.Callee, precCall)
		if _, isFn := n.Callee.(*FunctionExpression); isFn {
			callee = "(" + callee + ")"
		}
		if n.Optional {
			callee += "?."
		}
		return callee + "(" + p.arguments(n.Arguments) + ")"
	case *NewExpression:
		return "new " + p.expr(n.Callee, precNew+1) + "(" + p.arguments(n.Arguments) + ")"
	case *UnaryExpression:
		arg := p.expr(n.Argument, precUnary)
		if isWordOperator(n.Operator) {
			return n.Operator + " " + arg
		}
		if (n.Operator == "-" || n.Operator == "+") && strings.HasPrefix(arg, n.Operator) {
			return n.Operator + " " + arg
		}
		return n.Operator + arg
	case *UpdateExpression:
		p.checkWritable(n.Argument)
		arg := p.expr(n.Argument, precUpdate)
		if n.Prefix {
			return n.Operator + arg
		}
		return arg + n.Operator
	case *BinaryExpression:
		return p.binary(n.Operator, n.Left, n.Right)
	case *LogicalExpression:
		return p.binary(n.Operator, n.Left, n.Right)
	case *AssignmentExpression:
		p.checkWritable(n.Left)
		var left string
		switch n.Left.(type) {
		case *ObjectPattern, *ArrayPattern:
			left = p.pattern(n.Left)
		default:
			left = p.expr(n.Left, precCall)
		}
		return left + " " + n.Operator + " " + p.expr(n.Right, precAssign)
	case *ConditionalExpression:
		return p.expr(n.Test, precNullish) + " ? " + p.expr(n.Consequent, precAssign) + " : " + p.expr(n.Alternate, precAssign)
	case *ArrowFunctionExpression:
		return p.arrow(n)
	case *FunctionExpression:
		return p.function("function", n.ID, n.Params, n.Body, n.Async, n.Generator)
	case *SequenceExpression:
		parts := make([]string, len(n.Expressions))
		for i, x := range n.Expressions {
			parts[i] = p.expr(x, precAssign)
		}
		return strings.Join(parts, ", ")
	case *AssignmentPattern, *RestElement, *ObjectPattern, *ArrayPattern:
		return p.pattern(e)
	case *Property:
		return p.property(n)
	case *Unimplemented:
		p.rep.Warnf(n.Loc(), "transpilation for node type '%s' not yet implemented", n.Type)
		return fmt.Sprintf("undefined /* unimplemented: %s */", n.Type)
	case *Unknown:
		p.rep.Errorf(n.Loc(), "unsupported expression node type '%s'", n.Type)
		return "undefined"
	}
	p.rep.Errorf(e.Loc(), "unsupported expression node %s", e.Kind())
	return "undefined"
}

func (p *printer) identifier(n *Identifier) string {
	decl, ok := p.syms.ResolveDeclaration(n.Name)
	if !ok {
		if p.onFree != nil {
			p.onFree(n.Name)
		}
		return n.Name
	}
	if decl.IsReactive {
		p.reactiveReads++
		return n.Name + ".value"
	}
	return n.Name
}

func (p *printer) checkWritable(target Expression) {
	id, ok := target.(*Identifier)
	if !ok {
		return
	}
	if decl, found := p.syms.ResolveDeclaration(id.Name); found && decl.Kind == BindingDerived {
		p.rep.Errorf(id.Loc(), "cannot assign to derived value '%s'", id.Name)
	}
}

func (p *printer) binary(op string, left, right Expression) string {
	prec := binaryPrecedence[op]
	if prec == 0 {
		prec = precRelational
	}
	lp, rp := prec, prec+1
	if op == "**" {
		lp, rp = prec+1, prec
	}
	return p.expr(left, lp) + " " + op + " " + p.expr(right, rp)
}

func (p *printer) arguments(args []Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.expr(a, precAssign)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) property(e Expression) string {
	switch prop := e.(type) {
	case *Property:
		key := p.propertyKey(prop)
		if prop.Shorthand {
			if id, ok := prop.Value.(*Identifier); ok {
				value := p.identifier(id)
				if value == id.Name {
					return value
				}
				return key + ": " + value
			}
		}
		if fn, ok := prop.Value.(*FunctionExpression); ok && (prop.Method || prop.PropKind == "get" || prop.PropKind == "set") {
			prefix := ""
			if prop.PropKind == "get" || prop.PropKind == "set" {
				prefix = prop.PropKind + " "
			}
			return prefix + p.function("", &Identifier{Name: key}, fn.Params, fn.Body, fn.Async, fn.Generator)
		}
		return key + ": " + p.expr(prop.Value, precAssign)
	case *SpreadElement:
		return "..." + p.expr(prop.Argument, precAssign)
	}
	return p.expr(e, precAssign)
}

func (p *printer) propertyKey(prop *Property) string {
	if prop.Computed {
		return "[" + p.expr(prop.Key, precAssign) + "]"
	}
	return propertyName(prop.Key)
}

// propertyName prints a non-computed key without reactive rewriting.
func propertyName(e Expression) string {
	switch k := e.(type) {
	case *Identifier:
		return k.Name
	case *Literal:
		return k.Raw
	}
	return "undefined"
}

// pattern prints a binding target without reactive rewriting.
func (p *printer) pattern(e Expression) string {
	switch n := e.(type) {
	case nil:
		return ""
	case *Identifier:
		return n.Name
	case *AssignmentPattern:
		return p.pattern(n.Left) + " = " + p.expr(n.Right, precAssign)
	case *RestElement:
		return "..." + p.pattern(n.Argument)
	case *ObjectPattern:
		parts := make([]string, 0, len(n.Properties))
		for _, prop := range n.Properties {
			switch pp := prop.(type) {
			case *Property:
				if pp.Shorthand {
					parts = append(parts, p.pattern(pp.Value))
					continue
				}
				parts = append(parts, p.propertyKey(pp)+": "+p.pattern(pp.Value))
			default:
				parts = append(parts, p.pattern(prop))
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ArrayPattern:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = p.pattern(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MemberExpression:
		return p.expr(n, precCall)
	}
	return p.expr(e, precAssign)
}

func (p *printer) params(params []Expression) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = p.pattern(param)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) declareParams(params []Expression) {
	for _, param := range params {
		for _, id := range patternNames(param) {
			p.syms.Declare(id.Name, Declaration{Kind: BindingParam, Node: id})
		}
	}
}

func (p *printer) arrow(n *ArrowFunctionExpression) string {
	p.syms.PushScope(false)
	defer p.syms.PopScope()

	p.declareParams(n.Params)
	params := "(" + p.params(n.Params) + ")"
	if n.Async {
		params = "async " + params
	}

	if n.ExpressionBody {
		body, _ := n.Body.(Expression)
		code := p.expr(body, precAssign)
		if _, isObj := body.(*ObjectExpression); isObj {
			code = "(" + code + ")"
		}
		return params + " => " + code
	}
	block, _ := n.Body.(*BlockStatement)
	return params + " => " + p.functionBody(block)
}

func (p *printer) function(keyword string, id *Identifier, params []Expression, body *BlockStatement, async, generator bool) string {
	p.syms.PushScope(false)
	defer p.syms.PopScope()

	if id != nil && keyword != "" {
		p.syms.Declare(id.Name, Declaration{Kind: BindingFunction, Node: id})
	}
	p.declareParams(params)

	var b strings.Builder
	if async {
		b.WriteString("async ")
	}
	b.WriteString(keyword)
	if generator {
		b.WriteString("*")
	}
	if id != nil {
		if keyword != "" {
			b.WriteString(" ")
		}
		b.WriteString(id.Name)
	}
	b.WriteString("(" + p.params(params) + ") ")
	b.WriteString(p.functionBody(body))
	return b.String()
}

// functionBody prints a block in the already-open function scope.
func (p *printer) functionBody(block *BlockStatement) string {
	if block == nil || len(block.Body) == 0 {
		return "{}"
	}
	hoistDeclarations(p.syms, block.Body)
	p.depth++
	lines := p.statementLines(block.Body)
	p.depth--
	return "{\n" + lines + p.indent() + "}"
}

func (p *printer) block(block *BlockStatement) string {
	if block == nil || len(block.Body) == 0 {
		return "{}"
	}
	p.syms.PushScope(true)
	defer p.syms.PopScope()
	return p.functionBody(block)
}

func (p *printer) statementLines(body []Statement) string {
	var b strings.Builder
	for _, s := range body {
		code := p.statement(s)
		if code == "" {
			continue
		}
		b.WriteString(p.indent())
		b.WriteString(code)
		b.WriteByte('\n')
	}
	return b.String()
}

// statement prints one statement without leading indentation.
func (p *printer) statement(s Statement) string {
	switch n := s.(type) {
	case *VariableDeclaration:
		return p.variableDeclaration(n) + ";"
	case *FunctionDeclaration:
		return p.function("function", n.ID, n.Params, n.Body, n.Async, n.Generator)
	case *ExpressionStatement:
		if n.Expression == nil {
			p.rep.Errorf(n.Loc(), "expression statement without expression")
			return ""
		}
		code := p.expr(n.Expression, precSequence)
		if strings.HasPrefix(code, "{") || strings.HasPrefix(code, "function") {
			code = "(" + code + ")"
		}
		return code + ";"
	case *ReturnStatement:
		if n.Argument == nil {
			return "return;"
		}
		return "return " + p.expr(n.Argument, precSequence) + ";"
	case *BlockStatement:
		return p.block(n)
	case *IfStatement:
		code := "if (" + p.expr(n.Test, precSequence) + ") " + p.nested(n.Consequent)
		if n.Alternate != nil {
			code += " else " + p.nested(n.Alternate)
		}
		return code
	case *ForOfStatement:
		p.syms.PushScope(true)
		defer p.syms.PopScope()
		var left string
		switch l := n.Left.(type) {
		case *VariableDeclaration:
			declareVariables(p.syms, l)
			left = p.variableDeclaration(l)
		case Expression:
			left = p.pattern(l)
		}
		return "for (" + left + " of " + p.expr(n.Right, precAssign) + ") " + p.nested(n.Body)
	case *EmptyStatement:
		return ";"
	case *Program:
		return strings.TrimRight(p.statementLines(n.Body), "\n")
	case *Unimplemented:
		p.rep.Warnf(n.Loc(), "transpilation for node type '%s' not yet implemented", n.Type)
		return fmt.Sprintf("/* unimplemented: %s */", n.Type)
	case *Unknown:
		p.rep.Errorf(n.Loc(), "unsupported statement node type '%s'", n.Type)
		return ""
	}
	p.rep.Errorf(s.Loc(), "unsupported statement node %s", s.Kind())
	return ""
}

// nested prints the body of an if/for; non-block bodies are braced.
func (p *printer) nested(s Statement) string {
	if s == nil {
		return "{}"
	}
	if blk, ok := s.(*BlockStatement); ok {
		return p.block(blk)
	}
	return p.block(&BlockStatement{Body: []Statement{s}})
}

func (p *printer) variableDeclaration(n *VariableDeclaration) string {
	parts := make([]string, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		if d.ID == nil {
			p.rep.Errorf(d.Loc(), "variable declarator without identifier")
			continue
		}
		code := p.pattern(d.ID)
		if d.Init != nil {
			code += " = " + p.expr(d.Init, precAssign)
		}
		parts = append(parts, code)
	}
	return n.DeclKind + " " + strings.Join(parts, ", ")
}

// quoteJS returns s as a double-quoted JavaScript string literal.
func quoteJS(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func isWordOperator(op string) bool {
	return op == "typeof" || op == "void" || op == "delete"
}
