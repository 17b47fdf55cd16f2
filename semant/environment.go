package semant

import (
	"cool-checker/ast"
)

// Scope represents a single scope level (class, method, let or case branch)
type Scope struct {
	Symbols map[ast.Symbol]ast.Symbol
	Parent  *Scope
}

// Environment maps identifiers to their declared types with nested lexical
// scopes. Inner bindings shadow outer ones of the same name.
type Environment struct {
	CurrentScope *Scope
	depth        int
}

func NewEnvironment() *Environment {
	return &Environment{}
}

// EnterScope creates a new scope
func (env *Environment) EnterScope() {
	env.CurrentScope = &Scope{
		Symbols: make(map[ast.Symbol]ast.Symbol),
		Parent:  env.CurrentScope,
	}
	env.depth++
}

// ExitScope returns to the parent scope, dropping its bindings
func (env *Environment) ExitScope() {
	if env.CurrentScope != nil {
		env.CurrentScope = env.CurrentScope.Parent
		env.depth--
	}
}

// AddID binds name in the innermost scope.
func (env *Environment) AddID(name, typ ast.Symbol) {
	if env.CurrentScope == nil {
		env.EnterScope()
	}
	env.CurrentScope.Symbols[name] = typ
}

// Lookup searches for name from the innermost scope outwards.
func (env *Environment) Lookup(name ast.Symbol) (ast.Symbol, bool) {
	for scope := env.CurrentScope; scope != nil; scope = scope.Parent {
		if typ, ok := scope.Symbols[name]; ok {
			return typ, true
		}
	}
	return "", false
}

// Probe only looks at the innermost scope.
func (env *Environment) Probe(name ast.Symbol) (ast.Symbol, bool) {
	if env.CurrentScope == nil {
		return "", false
	}
	typ, ok := env.CurrentScope.Symbols[name]
	return typ, ok
}

func (env *Environment) Depth() int {
	return env.depth
}
