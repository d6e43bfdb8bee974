package color

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHex indicates a hex literal that is not #rgb or #rrggbb
	ErrInvalidHex = errors.New("invalid hex color")

	// ErrUnknownColorName indicates a keyword missing from the CSS color table
	ErrUnknownColorName = errors.New("unknown color name")
)

// InvalidHexError reports a hex literal that could not be decoded
type InvalidHexError struct {
	Literal string
	Cause   error
}

func (e *InvalidHexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid hex color %q: %v", e.Literal, e.Cause)
	}
	return fmt.Sprintf("invalid hex color %q: expected #rgb or #rrggbb", e.Literal)
}

func (e *InvalidHexError) Unwrap() error {
	return ErrInvalidHex
}

// NewInvalidHexError creates a new invalid hex error
func NewInvalidHexError(literal string) error {
	return &InvalidHexError{Literal: literal}
}
