package lang

// Environment is a frame in the lexical-scope chain described by spec.md
// §3/§4.5: innermost-first lookup, root-only top-level definition.
// Grounded on the teacher's pkg/core/types.go Environment{bindings,parent}.
type Environment struct {
	bindings map[Symbol]Value
	parent   *Environment
}

// NewEnvironment creates a frame whose lookups fall through to parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{bindings: make(map[Symbol]Value), parent: parent}
}

// Root walks up to the process-wide root frame.
func (e *Environment) Root() *Environment {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// Lookup resolves sym from innermost frame to root.
func (e *Environment) Lookup(sym Symbol) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds sym in this exact frame. Top-level `def` callers pass the
// root frame; local binders (`bind`, function parameter binding) pass the
// frame they just pushed.
func (e *Environment) Define(sym Symbol, v Value) {
	e.bindings[sym] = v
}

// PushChild creates a new frame parented to e, used by `bind` (parents to
// the caller's active frame per spec.md §3).
func (e *Environment) PushChild() *Environment {
	return NewEnvironment(e)
}

// Symbols returns every name bound in this frame and its ancestors,
// innermost first, used by the `all-symbols` builtin.
func (e *Environment) Symbols() []Symbol {
	seen := make(map[Symbol]bool)
	var names []Symbol
	for env := e; env != nil; env = env.parent {
		for sym := range env.bindings {
			if !seen[sym] {
				seen[sym] = true
				names = append(names, sym)
			}
		}
	}
	return names
}
