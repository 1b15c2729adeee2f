//go:build !wasm

package compiler

import (
	"strings"
	"testing"
)

// newTestPrinter returns a printer over a root scope declaring count as
// $state, double as $derived and recount as a plain value.
func newTestPrinter() (*printer, *Reporter) {
	syms := NewSymbolTable()
	syms.Declare("count", Declaration{Kind: BindingState, IsReactive: true})
	syms.Declare("double", Declaration{Kind: BindingDerived, IsReactive: true})
	syms.Declare("recount", Declaration{Kind: BindingPlain})
	rep := NewReporter(nil)
	return newPrinter(syms, rep, nil), rep
}

// TestPrinter_ReactiveRewrite verifies that only identifiers resolving to
// reactive bindings are rewritten, whatever their spelling overlap.
func TestPrinter_ReactiveRewrite(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		want     string
		reactive bool
	}{
		{"state read", ident("count"), "count.value", true},
		{"similar name", binary("+", ident("count"), ident("recount")), "count.value + recount", true},
		{"plain only", ident("recount"), "recount", false},
		{"free name", call(member(ident("console"), "log"), strLit("hi")), `console.log("hi")`, false},
		{"member object", member(ident("double"), "toFixed"), "double.value.toFixed", true},
		{"member property untouched", member(ident("recount"), "count"), "recount.count", false},
		{"assignment", assign(ident("count"), binary("+", ident("count"), num("1"))), "count.value = count.value + 1", true},
		{"update", &UpdateExpression{Operator: "++", Argument: ident("count")}, "count.value++", true},
		{
			"shorthand property",
			&ObjectExpression{Properties: []Expression{&Property{Key: ident("count"), Value: ident("count"), Shorthand: true}}},
			"{ count: count.value }",
			true,
		},
		{
			"shadowing parameter",
			arrow([]Expression{ident("count")}, binary("*", ident("count"), num("2"))),
			"(count) => count * 2",
			false,
		},
		{
			"object body",
			arrow(nil, &ObjectExpression{Properties: []Expression{&Property{Key: ident("n"), Value: ident("count")}}}),
			"() => ({ n: count.value })",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rep := newTestPrinter()

			got, reactive := p.printTracked(tt.expr)

			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if reactive != tt.reactive {
				t.Errorf("Expected reactive=%v, got %v", tt.reactive, reactive)
			}
			if rep.HasErrors() {
				t.Errorf("Unexpected diagnostics: %v", rep.Diagnostics())
			}
			if p.syms.Depth() != 1 {
				t.Errorf("Expected scopes to be balanced, depth %d", p.syms.Depth())
			}
		})
	}
}

// TestPrinter_Precedence checks that parentheses are kept only where needed.
func TestPrinter_Precedence(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{binary("*", binary("+", ident("a"), ident("b")), ident("c")), "(a + b) * c"},
		{binary("+", ident("a"), binary("*", ident("b"), ident("c"))), "a + b * c"},
		{binary("-", ident("a"), binary("-", ident("b"), ident("c"))), "a - (b - c)"},
		{binary("**", ident("a"), binary("**", ident("b"), ident("c"))), "a ** b ** c"},
		{&UnaryExpression{Operator: "!", Argument: binary("&&", ident("a"), ident("b"))}, "!(a && b)"},
		{&UnaryExpression{Operator: "typeof", Argument: ident("a")}, "typeof a"},
		{member(binary("+", ident("a"), ident("b")), "length"), "(a + b).length"},
		{&ConditionalExpression{Test: ident("a"), Consequent: num("1"), Alternate: num("2")}, "a ? 1 : 2"},
	}
	for _, tt := range tests {
		p, _ := newTestPrinter()
		if got, _ := p.printTracked(tt.expr); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

// TestPrinter_DerivedIsReadOnly verifies writes to derived values are errors.
func TestPrinter_DerivedIsReadOnly(t *testing.T) {
	for _, e := range []Expression{
		assign(ident("double"), num("2")),
		&UpdateExpression{Operator: "--", Argument: ident("double"), Prefix: true},
	} {
		p, rep := newTestPrinter()
		p.printTracked(e)

		if !rep.HasErrors() {
			t.Fatalf("Expected an error for %T", e)
		}
		if msg := rep.Diagnostics()[0].Message; msg != "cannot assign to derived value 'double'" {
			t.Errorf("Unexpected message %q", msg)
		}
	}
}

// TestPrinter_Statements prints a function declaration with nested blocks.
func TestPrinter_Statements(t *testing.T) {
	p, rep := newTestPrinter()
	fn := fnDecl("tick",
		&IfStatement{
			Test:       binary(">", ident("count"), num("10")),
			Consequent: &ReturnStatement{},
		},
		constDecl("next", binary("+", ident("count"), num("1"))),
		exprStmt(assign(ident("count"), ident("next"))),
	)

	got := p.statementLines([]Statement{fn})

	want := strings.Join([]string{
		"function tick() {",
		"  if (count.value > 10) {",
		"    return;",
		"  }",
		"  const next = count.value + 1;",
		"  count.value = next;",
		"}",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", got, want)
	}
	if len(rep.Diagnostics()) != 0 {
		t.Errorf("Unexpected diagnostics: %v", rep.Diagnostics())
	}
}

// TestPrinter_Unimplemented checks the placeholder and warning for
// recognized but unsupported nodes, and the error for unknown ones.
func TestPrinter_Unimplemented(t *testing.T) {
	p, rep := newTestPrinter()

	got, _ := p.printTracked(&Unimplemented{Type: "MustacheAttributeValue"})
	if got != "undefined /* unimplemented: MustacheAttributeValue */" {
		t.Errorf("Unexpected placeholder %q", got)
	}
	if rep.HasErrors() || !rep.HasWarnings() {
		t.Error("Expected a warning only")
	}

	p.printTracked(&Unknown{Type: "YieldExpression"})
	if !rep.HasErrors() {
		t.Error("Expected an error for an unknown expression")
	}
}

// TestQuoteJS keeps HTML characters unescaped.
func TestQuoteJS(t *testing.T) {
	if got := quoteJS(`<a href="x">`); got != `"<a href=\"x\">"` {
		t.Errorf("Unexpected quoting %q", got)
	}
}
