package compiler

// BindingKind classifies how a name was introduced.
type BindingKind int

const (
	BindingPlain BindingKind = iota
	BindingState
	BindingDerived
	BindingFunction
	BindingParam
	BindingEachItem
)

func (k BindingKind) String() string {
	switch k {
	case BindingState:
		return "state"
	case BindingDerived:
		return "derived"
	case BindingFunction:
		return "function"
	case BindingParam:
		return "param"
	case BindingEachItem:
		return "each-item"
	default:
		return "plain"
	}
}

// Declaration is the metadata recorded for one name in a scope.
type Declaration struct {
	Kind       BindingKind
	IsReactive bool
	Node       Node
}

// Scope is one level of lexical scoping. A child never owns its parent.
type Scope struct {
	parent       *Scope
	isBlockScope bool
	declarations map[string]Declaration
}

func newScope(parent *Scope, isBlockScope bool) *Scope {
	return &Scope{
		parent:       parent,
		isBlockScope: isBlockScope,
		declarations: make(map[string]Declaration),
	}
}

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// IsBlockScope reports whether the scope was opened by a block rather than a function.
func (s *Scope) IsBlockScope() bool { return s.isBlockScope }

// Lookup returns the declaration of name in this scope only.
func (s *Scope) Lookup(name string) (Declaration, bool) {
	d, ok := s.declarations[name]
	return d, ok
}

// findOwner walks from s outward and returns the first scope declaring name.
func (s *Scope) findOwner(name string) *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.declarations[name]; ok {
			return scope
		}
	}
	return nil
}

// SymbolTable owns the scope stack for one compilation pass.
// The root scope is created with the table and is never popped.
type SymbolTable struct {
	stack []*Scope
}

// NewSymbolTable returns a table holding only the root scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{stack: []*Scope{newScope(nil, false)}}
}

// Current returns the innermost active scope.
func (t *SymbolTable) Current() *Scope { return t.stack[len(t.stack)-1] }

// Root returns the outermost scope.
func (t *SymbolTable) Root() *Scope { return t.stack[0] }

// Depth returns the number of scopes on the stack, root included.
func (t *SymbolTable) Depth() int { return len(t.stack) }

// PushScope opens a new scope nested in the current one.
func (t *SymbolTable) PushScope(isBlockScope bool) *Scope {
	s := newScope(t.Current(), isBlockScope)
	t.stack = append(t.stack, s)
	return s
}

// PopScope closes the current scope. Popping the root scope is a traversal
// bug and panics.
func (t *SymbolTable) PopScope() {
	if len(t.stack) <= 1 {
		panic("compiler: cannot pop the root scope")
	}
	t.stack[len(t.stack)-1] = nil
	t.stack = t.stack[:len(t.stack)-1]
}

// Declare binds name in the current scope, replacing any earlier binding of
// the same name in that scope only.
func (t *SymbolTable) Declare(name string, decl Declaration) {
	t.Current().declarations[name] = decl
}

// Resolve searches from the innermost scope outward and returns the owning
// scope, or nil when name is not declared anywhere.
func (t *SymbolTable) Resolve(name string) *Scope {
	return t.Current().findOwner(name)
}

// ResolveDeclaration is Resolve followed by the lookup in the owning scope.
func (t *SymbolTable) ResolveDeclaration(name string) (Declaration, bool) {
	owner := t.Resolve(name)
	if owner == nil {
		return Declaration{}, false
	}
	return owner.Lookup(name)
}

// IsReactive reports whether name currently resolves to a reactive binding.
func (t *SymbolTable) IsReactive(name string) bool {
	d, ok := t.ResolveDeclaration(name)
	return ok && d.IsReactive
}
