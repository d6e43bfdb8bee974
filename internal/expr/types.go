package expr

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/retouch/internal/color"
)

// MaxCallDepth is the deepest chain of adjustment calls the model supports,
// e.g. saturate(darken(@base, 10%), 5%).
const MaxCallDepth = 2

// Expr is a parsed color expression.
//
// The set of implementations is closed: *Literal, *Text and *Call.
// Consumers switch over all three.
type Expr interface {
	// String renders the expression as stylesheet source, without retouching
	String() string
	isExpr()
}

// Literal is a color written directly in the stylesheet (hex or keyword)
type Literal struct {
	Color color.Color
	// Source is the text the color was parsed from, e.g. "#abc" or "salmon"
	Source string
}

func (l *Literal) String() string {
	if l.Source != "" {
		return l.Source
	}
	return l.Color.Hex()
}

func (*Literal) isExpr() {}

// Text is passed through unchanged: rgba() literals, variable references,
// unknown keywords and anything else the parser does not model.
type Text struct {
	Value string
}

func (t *Text) String() string { return t.Value }

func (*Text) isExpr() {}

// Reference returns the variable name when the text is exactly one @name token
func (t *Text) Reference() (string, bool) {
	if !IsVariableName(t.Value) {
		return "", false
	}
	return t.Value, true
}

// Call is one adjustment call such as darken(@land, 10%)
type Call struct {
	Func color.Func
	Arg  Expr
	// Value is the percentage as written, without the % sign
	Value string
}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s, %s%%)", c.Func, c.Arg, c.Value)
}

func (*Call) isExpr() {}

// Amount parses the written percentage
func (c *Call) Amount() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q in %s: %w", c.Value, c.Func, err)
	}
	return v, nil
}

// Depth counts the directly nested calls, including c itself
func (c *Call) Depth() int {
	depth := 1
	for inner, ok := c.Arg.(*Call); ok; inner, ok = inner.Arg.(*Call) {
		depth++
	}
	return depth
}

// Variable is a named binding created by an "@name: definition;" line
type Variable struct {
	// Name includes the leading @
	Name  string
	Value Expr
}

// IsVariableName reports whether s is a single @name token
func IsVariableName(s string) bool {
	if len(s) < 2 || s[0] != '@' {
		return false
	}
	for _, r := range s[1:] {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
