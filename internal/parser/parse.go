package parser

import (
	"strings"

	"bennypowers.dev/retouch/internal/color"
	"bennypowers.dev/retouch/internal/expr"
)

// Definition is the split form of an "@name: definition;" line
type Definition struct {
	Name string
	// Body is the trimmed text between the colon and the last semicolon
	Body string
}

// ParseVariableLine splits a variable definition line.
// The second result is false when the line is not a definition.
func ParseVariableLine(line string) (Definition, bool) {
	m := VariableDefRegexp.FindStringSubmatch(line)
	if m == nil {
		return Definition{}, false
	}
	return Definition{Name: m[1], Body: strings.TrimSpace(m[2])}, true
}

// ParseDefinition classifies a trimmed definition into an expression.
//
// Checks run in a fixed order: hex color, rgba() literal, adjustment call,
// variable reference, color keyword. Anything else is kept as Text.
// Variable references are not resolved here; the symbol table does that
// lazily when a color is needed.
//
// The only error is ErrUnsupportedNesting for call chains deeper than
// expr.MaxCallDepth. Unrecognized input is not an error.
func ParseDefinition(def string) (expr.Expr, error) {
	if hex := HexColorRegexp.FindString(def); hex != "" && strings.HasPrefix(def, hex) {
		c, err := color.ParseHex(hex)
		if err == nil {
			return &expr.Literal{Color: c, Source: hex}, nil
		}
		return &expr.Text{Value: def}, nil
	}

	if RGBARegexp.MatchString(def) {
		return &expr.Text{Value: def}, nil
	}

	if loc := FunctionRegexp.FindStringSubmatchIndex(def); loc != nil && loc[0] == 0 && !strings.HasPrefix(def, "mix") {
		m := newMatch(def, loc)
		return ParseCall(def, m.Groups[1], m.Groups[2], m.Groups[3])
	}

	if VariableRegexp.MatchString(def) {
		return &expr.Text{Value: def}, nil
	}

	if NamedColorRegexp.MatchString(def) {
		if c, err := color.Named(def); err == nil {
			return &expr.Literal{Color: c, Source: def}, nil
		}
	}

	return &expr.Text{Value: def}, nil
}

// ParseCall builds a call from the pieces FunctionRegexp captures.
// source is the full call text, kept as Text when name is not a supported
// adjustment function.
func ParseCall(source, name, arg, value string) (expr.Expr, error) {
	fn, ok := color.ParseFunc(name)
	if !ok {
		return &expr.Text{Value: source}, nil
	}

	inner, err := ParseDefinition(strings.TrimSpace(arg))
	if err != nil {
		return nil, err
	}

	call := &expr.Call{Func: fn, Arg: inner, Value: strings.TrimSpace(value)}
	if depth := call.Depth(); depth > expr.MaxCallDepth {
		return nil, expr.NewUnsupportedNestingError(source, depth)
	}
	return call, nil
}
