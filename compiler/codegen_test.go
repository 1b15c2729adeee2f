//go:build !wasm

package compiler

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func transpile(t *testing.T, root *Root, mode Mode) (*Output, *Transpiler, error) {
	t.Helper()
	tr := New(Options{Name: "Test", Mode: mode, Logger: slog.New(slog.DiscardHandler)})
	out, err := tr.Transpile(root)
	return out, tr, err
}

func mustTranspile(t *testing.T, root *Root) *Output {
	t.Helper()
	out, _, err := transpile(t, root, ModeClass)
	if err != nil {
		t.Fatalf("Transpile failed: %v", err)
	}
	return out
}

// counterScript declares count as $state, label as a plain const and
// double as $derived.
func counterScript() *Program {
	return program(
		letDecl("count", stateOf(num("0"))),
		constDecl("label", strLit("Count")),
		constDecl("double", derivedOf(binary("*", ident("count"), num("2")))),
	)
}

// TestDispatchTables_CoverAllKinds verifies every template and attribute
// kind has a generation rule.
func TestDispatchTables_CoverAllKinds(t *testing.T) {
	for _, k := range templateKinds {
		if _, ok := templateRules[k]; !ok {
			t.Errorf("No template rule for %s", k)
		}
	}
	for _, k := range attributeKinds {
		if _, ok := attributeRules[k]; !ok {
			t.Errorf("No attribute rule for %s", k)
		}
	}
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("Kind %d has no name", int(k))
		}
	}
}

// TestText_StaticRunsAreNotBound verifies text without reactive reads is
// emitted as a fixed string inside elements.
func TestText_StaticRunsAreNotBound(t *testing.T) {
	// Arrange: Only a plain binding is interpolated
	root := rootOf(counterScript(), elem("p", nil, text("Label: "), mustache(ident("label"))))

	// Act
	out := mustTranspile(t, root)

	// Assert
	if strings.Contains(out.Code, "bindText") {
		t.Errorf("Expected no text binding for a static run:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "createElement(\"p\", {}, [`Label: ${label}`])") {
		t.Errorf("Expected an inline template literal child:\n%s", out.Code)
	}
}

// TestText_ReactiveRunBindsOnce verifies a run with several reactive reads
// becomes one text node bound to one derived value.
func TestText_ReactiveRunBindsOnce(t *testing.T) {
	root := rootOf(counterScript(), elem("p", nil,
		mustache(ident("count")), text(" x 2 = "), mustache(ident("double")),
	))

	out := mustTranspile(t, root)

	if n := strings.Count(out.Code, "bindText("); n != 1 {
		t.Errorf("Expected exactly one bindText, got %d:\n%s", n, out.Code)
	}
	if !strings.Contains(out.Code, "$derived(() => `${count.value} x 2 = ${double.value}`)") {
		t.Errorf("Expected one derived template literal:\n%s", out.Code)
	}
}

// TestText_RootStaticTextIsANode verifies frame-level static text becomes a
// real text node so it can be removed with the frame.
func TestText_RootStaticTextIsANode(t *testing.T) {
	root := rootOf(nil, text("plain"))

	out := mustTranspile(t, root)

	if !strings.Contains(out.Code, `const text_1 = createTextNode("plain");`) {
		t.Errorf("Expected a text node for root text:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "const nodes = [text_1];") {
		t.Errorf("Expected the text node among the roots:\n%s", out.Code)
	}
}

// TestDerived_DedupedPerFrame verifies one expression used twice in a frame
// shares a derived value.
func TestDerived_DedupedPerFrame(t *testing.T) {
	attrs := []AttributeNode{&MustacheAttribute{Name: "title", Expression: ident("count")}}
	root := rootOf(counterScript(), elem("p", attrs, mustache(ident("count"))))

	out := mustTranspile(t, root)

	if n := strings.Count(out.Code, "$derived(() => count.value)"); n != 1 {
		t.Errorf("Expected one shared derived value, got %d:\n%s", n, out.Code)
	}
	if !strings.Contains(out.Code, `bindAttr(p_1, "title", derived_`) {
		t.Errorf("Expected an attribute binding:\n%s", out.Code)
	}
}

// TestAttributes covers the attribute rules on one element.
func TestAttributes(t *testing.T) {
	attrs := []AttributeNode{
		&KeyValueAttribute{Name: "class", Parts: []AttrPart{{Text: "box"}}},
		&KeyValueAttribute{Name: "data-count", Parts: []AttrPart{{Text: "n="}, {Expression: ident("count")}}},
		&BooleanAttribute{Name: "disabled", Value: "true"},
		&BooleanAttribute{Name: "hidden", Value: "false"},
		&BooleanAttribute{Name: "checked", Value: "count", Identifier: true},
		&KeyValueAttribute{Name: "required", Parts: []AttrPart{{Text: "false"}}},
		&EventHandler{Name: "onclick", Expression: assign(ident("count"), num("0"))},
		&TwoWayBinding{Name: "value", Expression: ident("count")},
	}
	root := rootOf(counterScript(), elem("input", attrs))

	out := mustTranspile(t, root)

	for _, want := range []string{
		`createElement("input", { class: "box", disabled: true, hidden: false, required: false, onclick: () => count.value = 0 }, [])`,
		`bindAttr(input_1, "data-count", derived_`,
		"$derived(() => `n=${count.value}`)",
		`$derived(() => !!count.value)`,
		`bindAttr(input_1, "checked", derived_`,
		`cleanups.push(bind(input_1, count));`,
	} {
		if !strings.Contains(out.Code, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out.Code)
		}
	}
	if len(out.Diagnostics) != 0 {
		t.Errorf("Unexpected diagnostics: %v", out.Diagnostics)
	}
}

// TestTwoWayBinding_NonReactive warns and assigns once.
func TestTwoWayBinding_NonReactive(t *testing.T) {
	attrs := []AttributeNode{&TwoWayBinding{Name: "value", Expression: ident("label")}}
	root := rootOf(counterScript(), elem("input", attrs))

	out := mustTranspile(t, root)

	if !strings.Contains(out.Code, `input_1["value"] = label;`) {
		t.Errorf("Expected a one-time assignment:\n%s", out.Code)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Message != "two-way binding on non-reactive variable: label" {
		t.Errorf("Expected one non-reactive warning, got %v", out.Diagnostics)
	}
}

// TestEventHandler_UnknownEventWarns checks the typo suggestion.
func TestEventHandler_UnknownEventWarns(t *testing.T) {
	attrs := []AttributeNode{&EventHandler{Name: "clik", Expression: ident("label")}}
	root := rootOf(counterScript(), elem("button", attrs))

	out := mustTranspile(t, root)

	if len(out.Diagnostics) != 1 || !strings.Contains(out.Diagnostics[0].Message, "did you mean 'click'") {
		t.Errorf("Expected a suggestion for clik, got %v", out.Diagnostics)
	}
}

// TestEachBlock_ItemShadowsState verifies the each item scope hides a
// reactive binding of the same name and is closed afterwards.
func TestEachBlock_ItemShadowsState(t *testing.T) {
	each := &EachBlock{
		Expression: ident("items"),
		Item:       ident("count"),
		Body:       []TemplateNode{elem("li", nil, mustache(ident("count")))},
	}
	script := program(
		letDecl("count", stateOf(num("0"))),
		letDecl("items", stateOf(&ArrayExpression{})),
	)
	root := rootOf(script, each, elem("p", nil, mustache(ident("count"))))

	out := mustTranspile(t, root)

	if !strings.Contains(out.Code, `createElement("li", {}, [count])`) {
		t.Errorf("Expected the item to be read as a plain value:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "each(each_anchor_1, () => items.value, render_item_1)") {
		t.Errorf("Expected an unkeyed each wiring:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "$derived(() => count.value)") {
		t.Errorf("Expected count to be reactive again after the block:\n%s", out.Code)
	}
}

// TestIfBlock_NoElse passes null for the missing branch.
func TestIfBlock_NoElse(t *testing.T) {
	ifb := &IfBlock{Test: binary(">", ident("count"), num("1")), Consequent: []TemplateNode{text("many")}}
	root := rootOf(counterScript(), ifb)

	out := mustTranspile(t, root)

	if !strings.Contains(out.Code, "ifBlock(if_anchor_1, () => count.value > 1, create_if_1, null)") {
		t.Errorf("Expected if wiring without else:\n%s", out.Code)
	}
}

// TestTranspile_ErrorsRefuseOutput verifies the emission gate.
func TestTranspile_ErrorsRefuseOutput(t *testing.T) {
	root := rootOf(counterScript(), &Unknown{Type: "Portal"}, text("kept"))

	out, tr, err := transpile(t, root, ModeClass)

	if out != nil {
		t.Errorf("Expected no output, got:\n%s", out.Code)
	}
	var de *DiagnosticsError
	if !errors.As(err, &de) || !errors.Is(err, ErrCompilationFailed) {
		t.Fatalf("Expected a DiagnosticsError, got %v", err)
	}
	if len(tr.Diagnostics()) != 1 || tr.Diagnostics()[0].Level != LevelError {
		t.Errorf("Expected one error, got %v", tr.Diagnostics())
	}

	// Act: The same transpiler starts clean on the next run
	out, err = tr.Transpile(rootOf(counterScript(), text("ok")))
	if err != nil || out == nil {
		t.Fatalf("Expected the second run to succeed, got %v", err)
	}
	if len(tr.Diagnostics()) != 0 {
		t.Errorf("Expected diagnostics to be cleared, got %v", tr.Diagnostics())
	}
}

// TestTranspile_UnimplementedWarns verifies recognized but unsupported
// nodes produce a placeholder and a warning without failing the run.
func TestTranspile_UnimplementedWarns(t *testing.T) {
	root := rootOf(nil, &Unimplemented{Type: "ContentBody"})
	root.Style = &Unimplemented{Type: "CssRoot"}

	out := mustTranspile(t, root)

	if !strings.Contains(out.Code, `createPlaceholder("unimplemented: ContentBody")`) {
		t.Errorf("Expected a placeholder:\n%s", out.Code)
	}
	if len(out.Diagnostics) != 2 {
		t.Errorf("Expected two warnings, got %v", out.Diagnostics)
	}
}

// TestTranspile_NilRoot is reported, not a panic.
func TestTranspile_NilRoot(t *testing.T) {
	_, tr, err := transpile(t, nil, ModeClass)
	if !errors.Is(err, ErrCompilationFailed) {
		t.Fatalf("Expected compilation failure, got %v", err)
	}
	if tr.Diagnostics()[0].Message != "root AST object is nil" {
		t.Errorf("Unexpected diagnostic %v", tr.Diagnostics()[0])
	}
}

// TestLifecycleHooks verifies lifecycle helpers are imported and triggered.
func TestLifecycleHooks(t *testing.T) {
	script := program(exprStmt(call(ident("onMount"), arrow(nil, call(member(ident("console"), "log"), strLit("up"))))))

	for _, mode := range []Mode{ModeClass, ModeFunction} {
		out, _, err := transpile(t, rootOf(script, text("x")), mode)
		if err != nil {
			t.Fatalf("Transpile failed: %v", err)
		}
		for _, want := range []string{"onMount", "triggerMount();", "triggerDestroy();"} {
			if !strings.Contains(out.Code, want) {
				t.Errorf("%s mode: expected %q in:\n%s", mode, want, out.Code)
			}
		}
	}
}

// TestOutput_Helpers lists only what the module imports, in export order.
func TestOutput_Helpers(t *testing.T) {
	out := mustTranspile(t, rootOf(nil, text("hi")))

	want := "createTextNode,createFragment"
	if got := strings.Join(out.Helpers, ","); got != want {
		t.Errorf("Expected helpers %q, got %q", want, got)
	}
	if !strings.HasPrefix(out.Code, generatedHeader+"\n") {
		t.Errorf("Expected the generated header first:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "  update(patch) {}\n") {
		t.Errorf("Expected an empty update without state:\n%s", out.Code)
	}
}

// TestComponentName covers file name conversion.
func TestComponentName(t *testing.T) {
	tests := map[string]string{
		"todo-list.ast":      "TodoList",
		"dir/counter.json":   "Counter",
		"2fa_prompt.ast":     "_2faPrompt",
		"---.ast":            "App",
		"already Pascal.ast": "AlreadyPascal",
	}
	for in, want := range tests {
		if got := ComponentName(in); got != want {
			t.Errorf("ComponentName(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestEachBlock_KeyedIndexFlag tells the runtime whether items read their
// index, so unindexed items may be reused after moving.
func TestEachBlock_KeyedIndexFlag(t *testing.T) {
	script := program(letDecl("todos", stateOf(&ArrayExpression{})))
	key := member(ident("todo"), "id")
	body := []TemplateNode{elem("li", nil, mustache(member(ident("todo"), "text")))}

	tests := []struct {
		index string
		want  string
	}{
		{"", "each(each_anchor_1, () => todos.value, render_item_1, (todo, index_1) => todo.id, false)"},
		{"i", "each(each_anchor_1, () => todos.value, render_item_1, (todo, i) => todo.id, true)"},
	}
	for _, tt := range tests {
		each := &EachBlock{Expression: ident("todos"), Item: ident("todo"), Index: tt.index, Key: key, Body: body}

		out := mustTranspile(t, rootOf(script, each))

		if !strings.Contains(out.Code, tt.want) {
			t.Errorf("Expected %q in:\n%s", tt.want, out.Code)
		}
	}
}
