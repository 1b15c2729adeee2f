package compiler

// Location is a 1-based source position carried by input nodes.
type Location struct {
	Line   int
	Column int
}

// Kind is the closed set of node kinds the compiler understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnimplemented

	// Template nodes.
	KindFragment
	KindElement
	KindText
	KindMustache
	KindComment
	KindIfBlock
	KindEachBlock

	// Attribute nodes.
	KindKeyValueAttribute
	KindBooleanAttribute
	KindBooleanIdentifierAttribute
	KindEventHandler
	KindTwoWayBinding
	KindMustacheAttribute

	// Script statements.
	KindProgram
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindExpressionStatement
	KindReturnStatement
	KindBlockStatement
	KindIfStatement
	KindForOfStatement
	KindEmptyStatement

	// Script expressions and patterns.
	KindIdentifier
	KindLiteral
	KindTemplateLiteral
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindSpreadElement
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindArrowFunctionExpression
	KindFunctionExpression
	KindSequenceExpression
	KindAssignmentPattern
	KindRestElement
	KindObjectPattern
	KindArrayPattern

	kindCount
)

var kindNames = [...]string{
	KindUnknown:                    "Unknown",
	KindUnimplemented:              "Unimplemented",
	KindFragment:                   "Fragment",
	KindElement:                    "Element",
	KindText:                       "TextNode",
	KindMustache:                   "MustacheTag",
	KindComment:                    "CommentBlock",
	KindIfBlock:                    "IfStatement",
	KindEachBlock:                  "EachStatement",
	KindKeyValueAttribute:          "KeyValueAttribute",
	KindBooleanAttribute:           "BooleanAttribute",
	KindBooleanIdentifierAttribute: "BooleanIdentifierAttribute",
	KindEventHandler:               "EventHandler",
	KindTwoWayBinding:              "TwoWayBindingAttribute",
	KindMustacheAttribute:          "MustacheAttribute",
	KindProgram:                    "Program",
	KindVariableDeclaration:        "VariableDeclaration",
	KindVariableDeclarator:         "VariableDeclarator",
	KindFunctionDeclaration:        "FunctionDeclaration",
	KindExpressionStatement:        "ExpressionStatement",
	KindReturnStatement:            "ReturnStatement",
	KindBlockStatement:             "BlockStatement",
	KindIfStatement:                "IfStatement",
	KindForOfStatement:             "ForOfStatement",
	KindEmptyStatement:             "EmptyStatement",
	KindIdentifier:                 "Identifier",
	KindLiteral:                    "Literal",
	KindTemplateLiteral:            "TemplateLiteral",
	KindArrayExpression:            "ArrayExpression",
	KindObjectExpression:           "ObjectExpression",
	KindProperty:                   "Property",
	KindSpreadElement:              "SpreadElement",
	KindMemberExpression:           "MemberExpression",
	KindCallExpression:             "CallExpression",
	KindNewExpression:              "NewExpression",
	KindUnaryExpression:            "UnaryExpression",
	KindUpdateExpression:           "UpdateExpression",
	KindBinaryExpression:           "BinaryExpression",
	KindLogicalExpression:          "LogicalExpression",
	KindAssignmentExpression:       "AssignmentExpression",
	KindConditionalExpression:      "ConditionalExpression",
	KindArrowFunctionExpression:    "ArrowFunctionExpression",
	KindFunctionExpression:         "FunctionExpression",
	KindSequenceExpression:         "SequenceExpression",
	KindAssignmentPattern:          "AssignmentPattern",
	KindRestElement:                "RestElement",
	KindObjectPattern:              "ObjectPattern",
	KindArrayPattern:               "ArrayPattern",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Loc() *Location
}

// TemplateNode is a node that may appear as a template child.
type TemplateNode interface {
	Node
	templateNode()
}

// AttributeNode is a node that may appear in an element's attribute list.
type AttributeNode interface {
	Node
	attributeNode()
}

// Statement is a script statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a script expression or binding pattern.
type Expression interface {
	Node
	expressionNode()
}

type base struct{ loc *Location }

func (b base) Loc() *Location { return b.loc }

// Root is the decoded tri-AST input.
type Root struct {
	Script   *Program
	Style    Node
	Template *Fragment
	// Source is the original component text, when the parser included it.
	// Diagnostics use it to show context lines.
	Source string
}

// Unknown is a node whose type tag is not part of the grammar.
type Unknown struct {
	base
	Type string
}

func (*Unknown) Kind() Kind      { return KindUnknown }
func (*Unknown) templateNode()   {}
func (*Unknown) attributeNode()  {}
func (*Unknown) statementNode()  {}
func (*Unknown) expressionNode() {}

// Unimplemented is a recognized node kind that has no generation rule yet.
type Unimplemented struct {
	base
	Type string
}

func (*Unimplemented) Kind() Kind      { return KindUnimplemented }
func (*Unimplemented) templateNode()   {}
func (*Unimplemented) attributeNode()  {}
func (*Unimplemented) statementNode()  {}
func (*Unimplemented) expressionNode() {}

// --- Template nodes ---

type Fragment struct {
	base
	Children []TemplateNode
}

type Element struct {
	base
	Name       string
	Attributes []AttributeNode
	Children   []TemplateNode
}

type TextNode struct {
	base
	Value string
}

// MustacheTag is an interpolated expression. Expression is nil when the
// input omitted it.
type MustacheTag struct {
	base
	Expression Expression
}

type CommentBlock struct {
	base
	Value string
}

// IfBlock is a template conditional. An else-if chain is represented by an
// Alternate holding a single nested IfBlock.
type IfBlock struct {
	base
	Test         Expression
	Consequent   []TemplateNode
	Alternate    []TemplateNode
	HasAlternate bool
}

// EachBlock renders Body once per element of Expression.
type EachBlock struct {
	base
	Expression Expression
	Item       Expression
	Index      string
	Key        Expression
	Body       []TemplateNode
}

func (*Fragment) Kind() Kind     { return KindFragment }
func (*Element) Kind() Kind      { return KindElement }
func (*TextNode) Kind() Kind     { return KindText }
func (*MustacheTag) Kind() Kind  { return KindMustache }
func (*CommentBlock) Kind() Kind { return KindComment }
func (*IfBlock) Kind() Kind      { return KindIfBlock }
func (*EachBlock) Kind() Kind    { return KindEachBlock }

func (*Fragment) templateNode()     {}
func (*Element) templateNode()      {}
func (*TextNode) templateNode()     {}
func (*MustacheTag) templateNode()  {}
func (*CommentBlock) templateNode() {}
func (*IfBlock) templateNode()      {}
func (*EachBlock) templateNode()    {}

// --- Attribute nodes ---

// AttrPart is one piece of a key/value attribute: literal text or an expression.
type AttrPart struct {
	Text       string
	Expression Expression
}

type KeyValueAttribute struct {
	base
	Name  string
	Parts []AttrPart
}

// BooleanAttribute covers both presence attributes (`disabled`, `disabled="false"`)
// and identifier-bound ones (`disabled={locked}`).
type BooleanAttribute struct {
	base
	Name       string
	Value      string
	Identifier bool
}

type EventHandler struct {
	base
	Name       string
	Expression Expression
}

type TwoWayBinding struct {
	base
	Name       string
	Expression Expression
}

type MustacheAttribute struct {
	base
	Name       string
	Expression Expression
}

func (*KeyValueAttribute) Kind() Kind { return KindKeyValueAttribute }
func (a *BooleanAttribute) Kind() Kind {
	if a.Identifier {
		return KindBooleanIdentifierAttribute
	}
	return KindBooleanAttribute
}
func (*EventHandler) Kind() Kind      { return KindEventHandler }
func (*TwoWayBinding) Kind() Kind     { return KindTwoWayBinding }
func (*MustacheAttribute) Kind() Kind { return KindMustacheAttribute }

func (*KeyValueAttribute) attributeNode() {}
func (*BooleanAttribute) attributeNode()  {}
func (*EventHandler) attributeNode()      {}
func (*TwoWayBinding) attributeNode()     {}
func (*MustacheAttribute) attributeNode() {}

// --- Script statements ---

type Program struct {
	base
	Body []Statement
}

type VariableDeclaration struct {
	base
	DeclKind     string
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	base
	ID   Expression
	Init Expression
}

type FunctionDeclaration struct {
	base
	ID        *Identifier
	Params    []Expression
	Body      *BlockStatement
	Async     bool
	Generator bool
}

type ExpressionStatement struct {
	base
	Expression Expression
}

type ReturnStatement struct {
	base
	Argument Expression
}

type BlockStatement struct {
	base
	Body []Statement
}

type IfStatement struct {
	base
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// ForOfStatement's Left is a *VariableDeclaration or a pattern expression.
type ForOfStatement struct {
	base
	Left  Node
	Right Expression
	Body  Statement
}

type EmptyStatement struct{ base }

func (*Program) Kind() Kind             { return KindProgram }
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind  { return KindVariableDeclarator }
func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (*BlockStatement) Kind() Kind      { return KindBlockStatement }
func (*IfStatement) Kind() Kind         { return KindIfStatement }
func (*ForOfStatement) Kind() Kind      { return KindForOfStatement }
func (*EmptyStatement) Kind() Kind      { return KindEmptyStatement }

func (*Program) statementNode()             {}
func (*VariableDeclaration) statementNode() {}
func (*FunctionDeclaration) statementNode() {}
func (*ExpressionStatement) statementNode() {}
func (*ReturnStatement) statementNode()     {}
func (*BlockStatement) statementNode()      {}
func (*IfStatement) statementNode()         {}
func (*ForOfStatement) statementNode()      {}
func (*EmptyStatement) statementNode()      {}

// --- Script expressions ---

type Identifier struct {
	base
	Name string
}

// Literal keeps the raw source text so printing preserves quoting.
type Literal struct {
	base
	Value any
	Raw   string
}

type TemplateElement struct {
	Raw string
}

type TemplateLiteral struct {
	base
	Quasis      []TemplateElement
	Expressions []Expression
}

// ArrayExpression elements may be nil for holes.
type ArrayExpression struct {
	base
	Elements []Expression
}

// ObjectExpression properties are *Property or *SpreadElement.
type ObjectExpression struct {
	base
	Properties []Expression
}

type Property struct {
	base
	Key       Expression
	Value     Expression
	Computed  bool
	Shorthand bool
	Method    bool
	PropKind  string
}

type SpreadElement struct {
	base
	Argument Expression
}

type MemberExpression struct {
	base
	Object   Expression
	Property Expression
	Computed bool
	Optional bool
}

type CallExpression struct {
	base
	Callee    Expression
	Arguments []Expression
	Optional  bool
}

type NewExpression struct {
	base
	Callee    Expression
	Arguments []Expression
}

type UnaryExpression struct {
	base
	Operator string
	Argument Expression
}

type UpdateExpression struct {
	base
	Operator string
	Argument Expression
	Prefix   bool
}

type BinaryExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

type LogicalExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

type AssignmentExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// ArrowFunctionExpression's Body is an Expression when ExpressionBody is set,
// otherwise a *BlockStatement.
type ArrowFunctionExpression struct {
	base
	Params         []Expression
	Body           Node
	ExpressionBody bool
	Async          bool
}

type FunctionExpression struct {
	base
	ID        *Identifier
	Params    []Expression
	Body      *BlockStatement
	Async     bool
	Generator bool
}

type SequenceExpression struct {
	base
	Expressions []Expression
}

type AssignmentPattern struct {
	base
	Left  Expression
	Right Expression
}

type RestElement struct {
	base
	Argument Expression
}

// ObjectPattern properties are *Property (Value holds the target pattern) or *RestElement.
type ObjectPattern struct {
	base
	Properties []Expression
}

type ArrayPattern struct {
	base
	Elements []Expression
}

func (*Identifier) Kind() Kind              { return KindIdentifier }
func (*Literal) Kind() Kind                 { return KindLiteral }
func (*TemplateLiteral) Kind() Kind         { return KindTemplateLiteral }
func (*ArrayExpression) Kind() Kind         { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind        { return KindObjectExpression }
func (*Property) Kind() Kind                { return KindProperty }
func (*SpreadElement) Kind() Kind           { return KindSpreadElement }
func (*MemberExpression) Kind() Kind        { return KindMemberExpression }
func (*CallExpression) Kind() Kind          { return KindCallExpression }
func (*NewExpression) Kind() Kind           { return KindNewExpression }
func (*UnaryExpression) Kind() Kind         { return KindUnaryExpression }
func (*UpdateExpression) Kind() Kind        { return KindUpdateExpression }
func (*BinaryExpression) Kind() Kind        { return KindBinaryExpression }
func (*LogicalExpression) Kind() Kind       { return KindLogicalExpression }
func (*AssignmentExpression) Kind() Kind    { return KindAssignmentExpression }
func (*ConditionalExpression) Kind() Kind   { return KindConditionalExpression }
func (*ArrowFunctionExpression) Kind() Kind { return KindArrowFunctionExpression }
func (*FunctionExpression) Kind() Kind      { return KindFunctionExpression }
func (*SequenceExpression) Kind() Kind      { return KindSequenceExpression }
func (*AssignmentPattern) Kind() Kind       { return KindAssignmentPattern }
func (*RestElement) Kind() Kind             { return KindRestElement }
func (*ObjectPattern) Kind() Kind           { return KindObjectPattern }
func (*ArrayPattern) Kind() Kind            { return KindArrayPattern }

func (*Identifier) expressionNode()              {}
func (*Literal) expressionNode()                 {}
func (*TemplateLiteral) expressionNode()         {}
func (*ArrayExpression) expressionNode()         {}
func (*ObjectExpression) expressionNode()        {}
func (*Property) expressionNode()                {}
func (*SpreadElement) expressionNode()           {}
func (*MemberExpression) expressionNode()        {}
func (*CallExpression) expressionNode()          {}
func (*NewExpression) expressionNode()           {}
func (*UnaryExpression) expressionNode()         {}
func (*UpdateExpression) expressionNode()        {}
func (*BinaryExpression) expressionNode()        {}
func (*LogicalExpression) expressionNode()       {}
func (*AssignmentExpression) expressionNode()    {}
func (*ConditionalExpression) expressionNode()   {}
func (*ArrowFunctionExpression) expressionNode() {}
func (*FunctionExpression) expressionNode()      {}
func (*SequenceExpression) expressionNode()      {}
func (*AssignmentPattern) expressionNode()       {}
func (*RestElement) expressionNode()             {}
func (*ObjectPattern) expressionNode()           {}
func (*ArrayPattern) expressionNode()            {}

// templateKinds lists every kind the template visitor must have a rule for.
var templateKinds = []Kind{
	KindUnknown,
	KindUnimplemented,
	KindFragment,
	KindElement,
	KindText,
	KindMustache,
	KindComment,
	KindIfBlock,
	KindEachBlock,
}

// attributeKinds lists every kind the attribute visitor must have a rule for.
var attributeKinds = []Kind{
	KindUnknown,
	KindUnimplemented,
	KindKeyValueAttribute,
	KindBooleanAttribute,
	KindBooleanIdentifierAttribute,
	KindEventHandler,
	KindTwoWayBinding,
	KindMustacheAttribute,
}
