package runtime

import (
	"fmt"
	"sort"
)

// Environment is the single flat binding table of one run. There is no
// scope chain: every name lives in the same map. Runs that may overlap need
// their own Environment.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define creates or overwrites a binding. It never fails.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign overwrites an existing binding. It never creates one.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; !ok {
		return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Has reports whether name is bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
