package runtime

import (
	"sort"

	"iulia/interpreter-go/pkg/ast"
)

// Environment is the flat visible-name table for one interpreter
// activation: a variable map, a function map, and the stack of scope
// frames that retract names when their block exits. Unlike chained
// environments, lookup never walks outward; the maps hold exactly the
// union of all currently-open frames plus the activation's seed bindings.
type Environment struct {
	variables map[string]Value
	functions map[string]*ast.FunctionDefinition
	scopes    [][]string
}

// NewEnvironment seeds an activation. The seed bindings (function
// parameters and zero-initialized return variables) belong to no scope
// frame; they live for the activation's whole lifetime. The function
// table is snapshot-copied so later registrations in the caller cannot
// leak into a running callee.
func NewEnvironment(variables map[string]Value, functions map[string]*ast.FunctionDefinition) *Environment {
	env := &Environment{
		variables: make(map[string]Value, len(variables)),
		functions: make(map[string]*ast.FunctionDefinition, len(functions)),
	}
	for name, value := range variables {
		env.variables[name] = value
	}
	for name, def := range functions {
		env.functions[name] = def
	}
	return env
}

// Value returns the current value bound to name.
func (e *Environment) Value(name string) (Value, error) {
	value, ok := e.variables[name]
	if !ok {
		return Value{}, NewUndefinedNameFault(name)
	}
	return value, nil
}

// SetValue overwrites an existing binding; the name must already exist.
func (e *Environment) SetValue(name string, value Value) error {
	if _, ok := e.variables[name]; !ok {
		return NewUndefinedNameFault(name)
	}
	e.variables[name] = value
	return nil
}

// DeclareValue introduces a fresh variable into the innermost open scope.
func (e *Environment) DeclareValue(name string, value Value) error {
	if err := e.record(name); err != nil {
		return err
	}
	e.variables[name] = value
	return nil
}

// DeclareFunction registers a function definition into the innermost open
// scope. The definition node is borrowed from the AST, which outlives
// every activation referencing it.
func (e *Environment) DeclareFunction(def *ast.FunctionDefinition) error {
	if err := e.record(def.Name); err != nil {
		return err
	}
	e.functions[def.Name] = def
	return nil
}

// Function resolves a user-function name.
func (e *Environment) Function(name string) (*ast.FunctionDefinition, error) {
	def, ok := e.functions[name]
	if !ok {
		return nil, NewUndefinedFunctionFault(name)
	}
	return def, nil
}

// Has reports whether name is currently visible as a variable or function.
func (e *Environment) Has(name string) bool {
	if _, ok := e.variables[name]; ok {
		return true
	}
	_, ok := e.functions[name]
	return ok
}

// FunctionsSnapshot copies the currently-visible function table for a
// child activation.
func (e *Environment) FunctionsSnapshot() map[string]*ast.FunctionDefinition {
	out := make(map[string]*ast.FunctionDefinition, len(e.functions))
	for name, def := range e.functions {
		out[name] = def
	}
	return out
}

// Snapshot returns a deterministic copy of the current variable bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.variables))
	for name, value := range e.variables {
		out[name] = value
	}
	return out
}

// Names returns the visible variable names in sorted order (useful for
// determinism in tests).
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenScope begins a lexical block.
func (e *Environment) OpenScope() {
	e.scopes = append(e.scopes, nil)
}

// CloseScope retracts every name the innermost frame recorded. Each name
// must resolve to exactly one of the two maps; anything else means the
// environment was corrupted.
func (e *Environment) CloseScope() error {
	if len(e.scopes) == 0 {
		return NewScopeCorruptedFault("")
	}
	frame := e.scopes[len(e.scopes)-1]
	e.scopes = e.scopes[:len(e.scopes)-1]
	for _, name := range frame {
		_, isVar := e.variables[name]
		_, isFun := e.functions[name]
		if isVar == isFun {
			return NewScopeCorruptedFault(name)
		}
		delete(e.variables, name)
		delete(e.functions, name)
	}
	return nil
}

func (e *Environment) record(name string) error {
	if e.Has(name) {
		return NewDuplicateDeclarationFault(name)
	}
	if len(e.scopes) == 0 {
		return NewScopeCorruptedFault(name)
	}
	top := len(e.scopes) - 1
	e.scopes[top] = append(e.scopes[top], name)
	return nil
}
