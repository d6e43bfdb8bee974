package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrUndefinedVariable indicates a reference to a variable that has not been defined yet
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrUnsupportedNesting indicates adjustment calls nested deeper than MaxCallDepth
	ErrUnsupportedNesting = errors.New("unsupported nesting depth")

	// ErrNotAColor indicates a passthrough value used where a color is required
	ErrNotAColor = errors.New("value does not resolve to a color")
)

// UndefinedVariableError represents a lookup of a variable before its definition
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %s\nSuggestion: define %s on an earlier line or in an earlier file", e.Name, e.Name)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// NewUndefinedVariableError creates a new undefined variable error
func NewUndefinedVariableError(name string) error {
	return &UndefinedVariableError{Name: name}
}

// UnsupportedNestingError represents a call chain deeper than MaxCallDepth
type UnsupportedNestingError struct {
	Source string
	Depth  int
}

func (e *UnsupportedNestingError) Error() string {
	return fmt.Sprintf("%s nests %d adjustment calls, at most %d are supported", e.Source, e.Depth, MaxCallDepth)
}

func (e *UnsupportedNestingError) Unwrap() error {
	return ErrUnsupportedNesting
}

// NewUnsupportedNestingError creates a new unsupported nesting error
func NewUnsupportedNestingError(source string, depth int) error {
	return &UnsupportedNestingError{Source: source, Depth: depth}
}
