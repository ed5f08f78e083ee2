// env.go — the variable environment.
//
// One root frame lives for the whole program run. Loop bodies that bind a
// variable of their own ("for each item in ...") push a child frame; every
// other construct, sections included, runs against the frame it was reached
// from, so assignments made inside a section or loop persist after it.
package corvo

// Env is a frame of name bindings with a parent link. Lookups walk
// parent-ward; an unbound name is an error at the call site, never an
// implicit default.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame with the given parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Assign updates the nearest visible binding of name, or defines it at the
// root frame when no binding exists anywhere. "the x is ..." therefore
// creates program-scoped variables, while a shadowing loop variable is
// updated in place for the duration of its block.
func (e *Env) Assign(name string, v Value) {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return
		}
		if f.parent == nil {
			f.table[name] = v
			return
		}
	}
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
