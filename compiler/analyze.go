package compiler

// Names of the reactive constructors recognized in scripts.
const (
	stateConstructor   = "$state"
	derivedConstructor = "$derived"
)

// scriptInfo is what analysis learns about a component script.
type scriptInfo struct {
	// States lists top-level $state bindings in declaration order.
	States []string
	// Derived lists top-level $derived bindings in declaration order.
	Derived []string
}

// analyzeScript declares every top-level binding of prog in the root scope.
func analyzeScript(syms *SymbolTable, prog *Program) scriptInfo {
	var info scriptInfo
	if prog == nil {
		return info
	}
	hoistDeclarations(syms, prog.Body)

	for _, s := range prog.Body {
		decl, ok := s.(*VariableDeclaration)
		if !ok {
			continue
		}
		for _, d := range decl.Declarations {
			id, ok := d.ID.(*Identifier)
			if !ok {
				continue
			}
			switch bindingFor(d.Init) {
			case BindingState:
				info.States = append(info.States, id.Name)
			case BindingDerived:
				info.Derived = append(info.Derived, id.Name)
			}
		}
	}
	return info
}

// hoistDeclarations declares the variables and functions introduced directly
// in body, so forward references resolve.
func hoistDeclarations(syms *SymbolTable, body []Statement) {
	for _, s := range body {
		switch n := s.(type) {
		case *VariableDeclaration:
			declareVariables(syms, n)
		case *FunctionDeclaration:
			if n.ID != nil {
				syms.Declare(n.ID.Name, Declaration{Kind: BindingFunction, Node: n})
			}
		}
	}
}

func declareVariables(syms *SymbolTable, n *VariableDeclaration) {
	for _, d := range n.Declarations {
		kind := bindingFor(d.Init)
		reactive := kind == BindingState || kind == BindingDerived
		if id, ok := d.ID.(*Identifier); ok {
			syms.Declare(id.Name, Declaration{Kind: kind, IsReactive: reactive, Node: d})
			continue
		}
		// Destructured names are plain values even when the source is reactive.
		for _, id := range patternNames(d.ID) {
			syms.Declare(id.Name, Declaration{Kind: BindingPlain, Node: d})
		}
	}
}

// bindingFor classifies a declarator by its initializer.
func bindingFor(init Expression) BindingKind {
	call, ok := init.(*CallExpression)
	if !ok {
		return BindingPlain
	}
	callee, ok := call.Callee.(*Identifier)
	if !ok {
		return BindingPlain
	}
	switch callee.Name {
	case stateConstructor:
		return BindingState
	case derivedConstructor:
		return BindingDerived
	}
	return BindingPlain
}

// patternNames returns every identifier bound by a binding pattern.
func patternNames(e Expression) []*Identifier {
	var out []*Identifier
	var walk func(Expression)
	walk = func(e Expression) {
		switch n := e.(type) {
		case *Identifier:
			out = append(out, n)
		case *AssignmentPattern:
			walk(n.Left)
		case *RestElement:
			walk(n.Argument)
		case *ObjectPattern:
			for _, prop := range n.Properties {
				if pp, ok := prop.(*Property); ok {
					walk(pp.Value)
				} else {
					walk(prop)
				}
			}
		case *ArrayPattern:
			for _, el := range n.Elements {
				if el != nil {
					walk(el)
				}
			}
		}
	}
	walk(e)
	return out
}
