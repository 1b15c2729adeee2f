package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// unimplementedTypes are tags the grammar produces but the generator does not
// support yet. They decode to *Unimplemented and are reported as warnings.
var unimplementedTypes = map[string]bool{
	"ContentBody":                      true,
	"TextWithExpressions":              true,
	"MustacheAttributeValue":           true,
	"MustacheAttributeValueWithParams": true,
	"CssRoot":                          true,
	"CssRule":                          true,
	"CssDeclaration":                   true,
}

// Decode reads one tri-AST input document.
func Decode(r io.Reader) (*Root, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding AST JSON: %w", err)
	}
	return decodeRoot(doc)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Root, error) {
	return Decode(bytes.NewReader(data))
}

func decodeRoot(doc map[string]any) (*Root, error) {
	jsAST, hasJS := doc["jsAST"].(map[string]any)
	cssAST, hasCSS := doc["cssAST"].(map[string]any)
	customAST, hasCustom := doc["customAST"].(map[string]any)
	if !hasJS && !hasCSS && !hasCustom {
		return nil, errors.New(`root object has none of "jsAST", "cssAST", "customAST"`)
	}

	root := &Root{}
	root.Source, _ = doc["source"].(string)

	if hasJS {
		if content, ok := jsAST["content"].(map[string]any); ok {
			if prog, ok := decodeStatement(content).(*Program); ok {
				root.Script = prog
			} else {
				return nil, fmt.Errorf("jsAST.content: expected Program, got %q", str(content, "type"))
			}
		}
	}
	if root.Script == nil {
		root.Script = &Program{}
	}

	if hasCSS {
		if content, ok := cssAST["content"].(map[string]any); ok {
			root.Style = decodeTemplate(content)
		}
	}

	if hasCustom {
		content, _ := customAST["content"].(map[string]any)
		html, _ := content["html"].(map[string]any)
		if html == nil {
			return nil, errors.New("customAST.content.html not found")
		}
		switch n := decodeTemplate(html).(type) {
		case *Fragment:
			root.Template = n
		default:
			root.Template = &Fragment{base: base{loc: n.Loc()}, Children: []TemplateNode{n}}
		}
	}
	if root.Template == nil {
		root.Template = &Fragment{}
	}

	return root, nil
}

// --- field helpers ---

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func array(m map[string]any, key string) []any {
	a, _ := m[key].([]any)
	return a
}

func location(m map[string]any) *Location {
	loc := object(m, "loc")
	if loc == nil {
		return nil
	}
	start := object(loc, "start")
	if start == nil {
		return nil
	}
	return &Location{Line: intValue(start["line"]), Column: intValue(start["column"])}
}

func intValue(v any) int {
	switch n := v.(type) {
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case float64:
		return int(n)
	}
	return 0
}

func baseOf(m map[string]any) base { return base{loc: location(m)} }

// --- template ---

func decodeChildren(items []any) []TemplateNode {
	out := make([]TemplateNode, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out = append(out, &Unknown{Type: fmt.Sprintf("%T", item)})
			continue
		}
		out = append(out, decodeTemplate(m))
	}
	return out
}

// blockBody accepts {body: [...]}, {children: [...]} or a bare array.
func blockBody(v any) ([]TemplateNode, bool) {
	switch b := v.(type) {
	case []any:
		return decodeChildren(b), true
	case map[string]any:
		if t := str(b, "type"); t == "IfStatement" {
			return []TemplateNode{decodeTemplate(b)}, true
		}
		if items, ok := b["body"].([]any); ok {
			return decodeChildren(items), true
		}
		if items, ok := b["children"].([]any); ok {
			return decodeChildren(items), true
		}
		return nil, true
	}
	return nil, false
}

func decodeTemplate(m map[string]any) TemplateNode {
	typ := str(m, "type")
	b := baseOf(m)

	switch typ {
	case "Fragment":
		return &Fragment{base: b, Children: decodeChildren(array(m, "children"))}
	case "Element":
		el := &Element{base: b, Name: str(m, "name"), Children: decodeChildren(array(m, "children"))}
		for _, a := range array(m, "attributes") {
			am, ok := a.(map[string]any)
			if !ok {
				el.Attributes = append(el.Attributes, &Unknown{Type: fmt.Sprintf("%T", a)})
				continue
			}
			el.Attributes = append(el.Attributes, decodeAttribute(am))
		}
		return el
	case "TextNode", "Text":
		v := str(m, "value")
		if v == "" {
			v = str(m, "data")
		}
		return &TextNode{base: b, Value: v}
	case "MustacheTag":
		return &MustacheTag{base: b, Expression: optionalExpression(m, "expression")}
	case "CommentBlock":
		return &CommentBlock{base: b, Value: str(m, "value")}
	case "IfStatement":
		n := &IfBlock{base: b, Test: optionalExpression(m, "test")}
		n.Consequent, _ = blockBody(m["consequent"])
		if alt, ok := m["alternate"]; ok && alt != nil {
			n.Alternate, n.HasAlternate = blockBody(alt)
		}
		return n
	case "EachStatement":
		return decodeEach(m, b)
	}

	if unimplementedTypes[typ] {
		return &Unimplemented{base: b, Type: typ}
	}
	return &Unknown{base: b, Type: typ}
}

func decodeEach(m map[string]any, b base) *EachBlock {
	n := &EachBlock{base: b}

	n.Expression = optionalExpression(m, "expression")
	if n.Expression == nil {
		n.Expression = optionalExpression(m, "iterable")
	}

	for _, key := range []string{"item", "context"} {
		switch v := m[key].(type) {
		case string:
			n.Item = &Identifier{Name: v}
		case map[string]any:
			n.Item = decodeExpression(v)
		}
		if n.Item != nil {
			break
		}
	}

	switch v := m["index"].(type) {
	case string:
		n.Index = v
	case map[string]any:
		n.Index = str(v, "name")
	}

	n.Key = optionalExpression(m, "key")

	if body, ok := blockBody(m["body"]); ok {
		n.Body = body
	} else {
		n.Body = decodeChildren(array(m, "children"))
	}
	return n
}

func decodeAttribute(m map[string]any) AttributeNode {
	typ := str(m, "type")
	b := baseOf(m)
	name := str(m, "name")

	switch typ {
	case "KeyValueAttribute":
		return &KeyValueAttribute{base: b, Name: name, Parts: decodeAttrParts(m["value"])}
	case "BooleanAttribute", "BooleanIdentifierAttribute":
		a := &BooleanAttribute{base: b, Name: name, Identifier: typ == "BooleanIdentifierAttribute"}
		switch v := m["value"].(type) {
		case bool:
			a.Value = fmt.Sprint(v)
		case string:
			a.Value = v
		case nil:
			a.Value = "true"
		case map[string]any:
			a.Value = str(v, "name")
			a.Identifier = true
		}
		return a
	case "EventHandler":
		return &EventHandler{base: b, Name: name, Expression: optionalExpression(m, "expression")}
	case "TwoWayBindingAttribute":
		return &TwoWayBinding{base: b, Name: name, Expression: optionalExpression(m, "expression")}
	case "MustacheAttribute":
		return &MustacheAttribute{base: b, Name: name, Expression: optionalExpression(m, "expression")}
	}

	if unimplementedTypes[typ] {
		return &Unimplemented{base: b, Type: typ}
	}
	return &Unknown{base: b, Type: typ}
}

func decodeAttrParts(v any) []AttrPart {
	switch val := v.(type) {
	case string:
		return []AttrPart{{Text: val}}
	case map[string]any:
		return []AttrPart{decodeAttrPart(val)}
	case []any:
		parts := make([]AttrPart, 0, len(val))
		for _, p := range val {
			switch pv := p.(type) {
			case string:
				parts = append(parts, AttrPart{Text: pv})
			case map[string]any:
				parts = append(parts, decodeAttrPart(pv))
			}
		}
		return parts
	}
	return nil
}

func decodeAttrPart(m map[string]any) AttrPart {
	if str(m, "type") == "MustacheTag" {
		if expr := optionalExpression(m, "expression"); expr != nil {
			return AttrPart{Expression: expr}
		}
	}
	if d, ok := m["data"].(string); ok {
		return AttrPart{Text: d}
	}
	return AttrPart{Text: str(m, "value")}
}

// --- script ---

func optionalExpression(m map[string]any, key string) Expression {
	sub := object(m, key)
	if sub == nil {
		return nil
	}
	return decodeExpression(sub)
}

func expressionList(items []any) []Expression {
	out := make([]Expression, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out = append(out, nil)
			continue
		}
		out = append(out, decodeExpression(m))
	}
	return out
}

func statementList(items []any) []Statement {
	out := make([]Statement, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, decodeStatement(m))
		}
	}
	return out
}

func optionalStatement(m map[string]any, key string) Statement {
	sub := object(m, key)
	if sub == nil {
		return nil
	}
	return decodeStatement(sub)
}

func decodeBlock(m map[string]any) *BlockStatement {
	if m == nil {
		return &BlockStatement{}
	}
	return &BlockStatement{base: baseOf(m), Body: statementList(array(m, "body"))}
}

func decodeStatement(m map[string]any) Statement {
	b := baseOf(m)

	switch str(m, "type") {
	case "Program":
		return &Program{base: b, Body: statementList(array(m, "body"))}
	case "VariableDeclaration":
		return decodeVariableDeclaration(m)
	case "FunctionDeclaration":
		fn := &FunctionDeclaration{
			base:      b,
			Params:    expressionList(array(m, "params")),
			Body:      decodeBlock(object(m, "body")),
			Async:     boolean(m, "async"),
			Generator: boolean(m, "generator"),
		}
		if id := object(m, "id"); id != nil {
			fn.ID = &Identifier{base: baseOf(id), Name: str(id, "name")}
		}
		return fn
	case "ExpressionStatement":
		return &ExpressionStatement{base: b, Expression: optionalExpression(m, "expression")}
	case "ReturnStatement":
		return &ReturnStatement{base: b, Argument: optionalExpression(m, "argument")}
	case "BlockStatement":
		return decodeBlock(m)
	case "IfStatement":
		return &IfStatement{
			base:       b,
			Test:       optionalExpression(m, "test"),
			Consequent: optionalStatement(m, "consequent"),
			Alternate:  optionalStatement(m, "alternate"),
		}
	case "ForOfStatement":
		st := &ForOfStatement{base: b, Right: optionalExpression(m, "right"), Body: optionalStatement(m, "body")}
		if left := object(m, "left"); left != nil {
			if str(left, "type") == "VariableDeclaration" {
				st.Left = decodeVariableDeclaration(left)
			} else {
				st.Left = decodeExpression(left)
			}
		}
		return st
	case "EmptyStatement":
		return &EmptyStatement{base: b}
	}

	typ := str(m, "type")
	if unimplementedTypes[typ] {
		return &Unimplemented{base: b, Type: typ}
	}
	return &Unknown{base: b, Type: typ}
}

func decodeVariableDeclaration(m map[string]any) *VariableDeclaration {
	decl := &VariableDeclaration{base: baseOf(m), DeclKind: str(m, "kind")}
	if decl.DeclKind == "" {
		decl.DeclKind = "let"
	}
	for _, d := range array(m, "declarations") {
		dm, ok := d.(map[string]any)
		if !ok {
			continue
		}
		decl.Declarations = append(decl.Declarations, &VariableDeclarator{
			base: baseOf(dm),
			ID:   optionalExpression(dm, "id"),
			Init: optionalExpression(dm, "init"),
		})
	}
	return decl
}

func decodeExpression(m map[string]any) Expression {
	b := baseOf(m)

	switch str(m, "type") {
	case "Identifier":
		return &Identifier{base: b, Name: str(m, "name")}
	case "Literal":
		return decodeLiteral(m)
	case "TemplateLiteral":
		tl := &TemplateLiteral{base: b, Expressions: expressionList(array(m, "expressions"))}
		for _, q := range array(m, "quasis") {
			qm, _ := q.(map[string]any)
			tl.Quasis = append(tl.Quasis, TemplateElement{Raw: str(object(qm, "value"), "raw")})
		}
		return tl
	case "ArrayExpression":
		return &ArrayExpression{base: b, Elements: expressionList(array(m, "elements"))}
	case "ObjectExpression":
		return &ObjectExpression{base: b, Properties: expressionList(array(m, "properties"))}
	case "Property":
		return &Property{
			base:      b,
			Key:       optionalExpression(m, "key"),
			Value:     optionalExpression(m, "value"),
			Computed:  boolean(m, "computed"),
			Shorthand: boolean(m, "shorthand"),
			Method:    boolean(m, "method"),
			PropKind:  str(m, "kind"),
		}
	case "SpreadElement":
		return &SpreadElement{base: b, Argument: optionalExpression(m, "argument")}
	case "MemberExpression":
		return &MemberExpression{
			base:     b,
			Object:   optionalExpression(m, "object"),
			Property: optionalExpression(m, "property"),
			Computed: boolean(m, "computed"),
			Optional: boolean(m, "optional"),
		}
	case "CallExpression":
		return &CallExpression{
			base:      b,
			Callee:    optionalExpression(m, "callee"),
			Arguments: expressionList(array(m, "arguments")),
			Optional:  boolean(m, "optional"),
		}
	case "NewExpression":
		return &NewExpression{base: b, Callee: optionalExpression(m, "callee"), Arguments: expressionList(array(m, "arguments"))}
	case "UnaryExpression":
		return &UnaryExpression{base: b, Operator: str(m, "operator"), Argument: optionalExpression(m, "argument")}
	case "UpdateExpression":
		return &UpdateExpression{base: b, Operator: str(m, "operator"), Argument: optionalExpression(m, "argument"), Prefix: boolean(m, "prefix")}
	case "BinaryExpression":
		return &BinaryExpression{base: b, Operator: str(m, "operator"), Left: optionalExpression(m, "left"), Right: optionalExpression(m, "right")}
	case "LogicalExpression":
		return &LogicalExpression{base: b, Operator: str(m, "operator"), Left: optionalExpression(m, "left"), Right: optionalExpression(m, "right")}
	case "AssignmentExpression":
		return &AssignmentExpression{base: b, Operator: str(m, "operator"), Left: optionalExpression(m, "left"), Right: optionalExpression(m, "right")}
	case "ConditionalExpression":
		return &ConditionalExpression{
			base:       b,
			Test:       optionalExpression(m, "test"),
			Consequent: optionalExpression(m, "consequent"),
			Alternate:  optionalExpression(m, "alternate"),
		}
	case "ArrowFunctionExpression":
		fn := &ArrowFunctionExpression{
			base:           b,
			Params:         expressionList(array(m, "params")),
			ExpressionBody: boolean(m, "expression"),
			Async:          boolean(m, "async"),
		}
		body := object(m, "body")
		if str(body, "type") == "BlockStatement" {
			fn.Body = decodeBlock(body)
			fn.ExpressionBody = false
		} else if body != nil {
			fn.Body = decodeExpression(body)
			fn.ExpressionBody = true
		}
		return fn
	case "FunctionExpression":
		fn := &FunctionExpression{
			base:      b,
			Params:    expressionList(array(m, "params")),
			Body:      decodeBlock(object(m, "body")),
			Async:     boolean(m, "async"),
			Generator: boolean(m, "generator"),
		}
		if id := object(m, "id"); id != nil {
			fn.ID = &Identifier{base: baseOf(id), Name: str(id, "name")}
		}
		return fn
	case "SequenceExpression":
		return &SequenceExpression{base: b, Expressions: expressionList(array(m, "expressions"))}
	case "AssignmentPattern":
		return &AssignmentPattern{base: b, Left: optionalExpression(m, "left"), Right: optionalExpression(m, "right")}
	case "RestElement":
		return &RestElement{base: b, Argument: optionalExpression(m, "argument")}
	case "ObjectPattern":
		return &ObjectPattern{base: b, Properties: expressionList(array(m, "properties"))}
	case "ArrayPattern":
		return &ArrayPattern{base: b, Elements: expressionList(array(m, "elements"))}
	}

	typ := str(m, "type")
	if unimplementedTypes[typ] {
		return &Unimplemented{base: b, Type: typ}
	}
	return &Unknown{base: b, Type: typ}
}

func decodeLiteral(m map[string]any) *Literal {
	lit := &Literal{base: baseOf(m), Raw: str(m, "raw")}
	switch v := m["value"].(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			lit.Value = f
		}
		if lit.Raw == "" {
			lit.Raw = v.String()
		}
	case string:
		lit.Value = v
		if lit.Raw == "" {
			lit.Raw = quoteJS(v)
		}
	case bool:
		lit.Value = v
		if lit.Raw == "" {
			lit.Raw = fmt.Sprint(v)
		}
	case nil:
		if re := object(m, "regex"); re != nil {
			lit.Raw = "/" + str(re, "pattern") + "/" + str(re, "flags")
		} else if lit.Raw == "" {
			lit.Raw = "null"
		}
	}
	return lit
}
