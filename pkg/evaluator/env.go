package evaluator

import (
	"sort"

	"github.com/thomasrohde/schierke/go/pkg/ast"
)

// Env is a flat mapping from variable name to the value last bound to it.
// Only defined variables are present; there is no parent scope.
type Env struct {
	vars map[string]Value
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// NewEnvFrom creates an environment seeded with a copy of vars.
func NewEnvFrom(vars map[string]Value) *Env {
	env := &Env{vars: make(map[string]Value, len(vars))}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// Define binds the textual rendering of name to val and returns val.
func (e *Env) Define(name ast.Expr, val Value) Value {
	e.vars[ast.Render(name)] = val
	return val
}

// Lookup returns the value bound to name, or an E_UNDEFINED_VARIABLE error.
func (e *Env) Lookup(name string) (Value, error) {
	if val, ok := e.vars[name]; ok {
		return val, nil
	}
	return nil, undefinedVariable(name)
}

// Load replaces the whole mapping with a copy of other's. Names present
// only in the old mapping are dropped.
func (e *Env) Load(other *Env) {
	if other == e {
		return
	}
	vars := make(map[string]Value)
	if other != nil {
		for k, v := range other.vars {
			vars[k] = v
		}
	}
	e.vars = vars
}

// Clone returns an independent copy of the environment.
func (e *Env) Clone() *Env {
	return NewEnvFrom(e.vars)
}

// Len returns the number of bound variables.
func (e *Env) Len() int {
	return len(e.vars)
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the bindings.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
