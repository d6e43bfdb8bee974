package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Color is an sRGB color with channels nominally in [0,1].
// Results of scale operations may fall outside that range; they are
// clamped wherever a color is encoded or retouched.
type Color struct {
	R, G, B float64
}

// RGB builds a Color from three channel values.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ExpandHex expands a 3-digit hex color (#abc) to its 6-digit form (#aabbcc).
// Other strings are returned unchanged.
func ExpandHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}

// ParseHex decodes a #rgb or #rrggbb color literal
func ParseHex(hex string) (Color, error) {
	expanded := ExpandHex(hex)
	if len(expanded) != 7 || expanded[0] != '#' {
		return Color{}, NewInvalidHexError(hex)
	}

	c, err := colorful.Hex(strings.ToLower(expanded))
	if err != nil {
		return Color{}, &InvalidHexError{Literal: hex, Cause: err}
	}
	return fromColorful(c), nil
}

// Named looks up a CSS color keyword such as "salmon".
// Keywords with transparency are not colors in this sense and fail the lookup.
func Named(name string) (Color, error) {
	if !isKeyword(name) {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColorName, name)
	}
	parsed, err := csscolorparser.Parse(name)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColorName, name)
	}
	if parsed.A < 1 {
		return Color{}, fmt.Errorf("%w: %q has alpha %.2f", ErrUnknownColorName, name, parsed.A)
	}
	return Color{R: parsed.R, G: parsed.G, B: parsed.B}, nil
}

func isKeyword(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// Clamped returns the color with every channel limited to [0,1]
func (c Color) Clamped() Color {
	return fromColorful(c.colorful().Clamped())
}

// Hex encodes the clamped color as a lowercase #rrggbb string
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// HSL returns hue in degrees, saturation and lightness in [0,1]
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// FromHSL converts hue (degrees), saturation and lightness back to RGB.
// Lightness outside [0,1] is not clipped.
func FromHSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}
