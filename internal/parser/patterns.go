package parser

import "regexp"

// Token shapes of the CartoCSS subset the rewriter understands.
// Patterns anchored with ^ classify a whole definition; the others are
// searched for anywhere on a line.

// VariableDefRegexp matches a variable definition line: @name: definition;
// The definition runs up to the last semicolon on the line.
var VariableDefRegexp = regexp.MustCompile(`^\s*(@[\w\-]+)\s*:(.+);`)

// VariableRegexp matches a variable reference at the start of a definition
var VariableRegexp = regexp.MustCompile(`^@[\w\-]+`)

// HexColorRegexp matches a hex color literal such as #a9bcc9 or #abc
var HexColorRegexp = regexp.MustCompile(`#[\da-fA-F]+\b`)

// RGBARegexp matches an rgba() literal at the start of a definition
var RGBARegexp = regexp.MustCompile(`^rgba\(.+\)`)

// NamedColorRegexp matches a bare color keyword
var NamedColorRegexp = regexp.MustCompile(`^[A-Za-z]+$`)

// FunctionRegexp matches name(argument, value%). The argument is greedy, so
// for a chain it captures the inner call. Use FindFunctionCalls to exclude mix.
var FunctionRegexp = regexp.MustCompile(`\b(\w+)\((.+),\s*(.+)%\s*\)`)

// MixRegexp matches mix(call1, call2, weight%) where both calls are single level
var MixRegexp = regexp.MustCompile(`\bmix\((\w+\([^()]+\)),\s*(\w+\([^()]+\)),\s*(.+)%\s*\)`)

// ScaleHSLARegexp matches a lightness-only rescale and captures l0 and l1:
// scale-hsla(0,1,0,1,l0,l1,0,1)
var ScaleHSLARegexp = regexp.MustCompile(`scale-hsla\(\s*0\s*,\s*1\s*,\s*0\s*,\s*1\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*0\s*,\s*1\s*\)`)
