package expr

import (
	"fmt"
	"sync"

	"bennypowers.dev/retouch/internal/color"
)

// Table holds the variables defined so far in a run.
//
// Definitions accumulate across every stylesheet processed by one run, in
// file-then-line order, so a later file may use variables from an earlier one.
// Names are kept in first-definition order. Redefining a name replaces its
// value but keeps its original position.
type Table struct {
	vars  map[string]*Variable
	order []string
	mu    sync.RWMutex
}

// NewTable creates an empty symbol table
func NewTable() *Table {
	return &Table{
		vars: make(map[string]*Variable),
	}
}

// Define adds or replaces a variable
func (t *Table) Define(v *Variable) error {
	if v == nil {
		return fmt.Errorf("variable cannot be nil")
	}
	if !IsVariableName(v.Name) {
		return fmt.Errorf("invalid variable name %q", v.Name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.vars[v.Name]; !exists {
		t.order = append(t.order, v.Name)
	}
	t.vars[v.Name] = v
	return nil
}

// Lookup returns the variable bound to name, or an UndefinedVariableError
func (t *Table) Lookup(name string) (*Variable, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.vars[name]
	if !ok {
		return nil, NewUndefinedVariableError(name)
	}
	return v, nil
}

// Names returns the defined names in definition order
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Count returns the number of variables
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.vars)
}

// Clear removes all variables
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.vars = make(map[string]*Variable)
	t.order = nil
}

// Resolve reduces an expression to a concrete color.
// Variable references are followed and nested calls evaluated with their
// written percentage.
func (t *Table) Resolve(e Expr) (color.Color, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Color, nil
	case *Text:
		name, ok := e.Reference()
		if !ok {
			return color.Color{}, fmt.Errorf("%w: %q", ErrNotAColor, e.Value)
		}
		v, err := t.Lookup(name)
		if err != nil {
			return color.Color{}, err
		}
		c, err := t.Resolve(v.Value)
		if err != nil {
			return color.Color{}, fmt.Errorf("resolving %s: %w", name, err)
		}
		return c, nil
	case *Call:
		return t.Eval(e)
	default:
		return color.Color{}, fmt.Errorf("unexpected expression %T", e)
	}
}

// Eval computes the color a call produces with its written percentage.
// Only calls over a variable reference can be evaluated; a call over a
// literal or another call is reached through a chain instead.
func (t *Table) Eval(c *Call) (color.Color, error) {
	ref, ok := c.Arg.(*Text)
	if !ok {
		return color.Color{}, fmt.Errorf("cannot evaluate %s: argument is not a variable reference", c)
	}
	if _, ok := ref.Reference(); !ok {
		return color.Color{}, fmt.Errorf("cannot evaluate %s: %w: %q", c, ErrNotAColor, ref.Value)
	}

	base, err := t.Resolve(ref)
	if err != nil {
		return color.Color{}, err
	}
	amount, err := c.Amount()
	if err != nil {
		return color.Color{}, err
	}
	return c.Func.Apply(base, amount), nil
}
