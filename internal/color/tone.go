package color

import "math"

// Tone curve constants. The curve lifts shadows by a fixed offset and
// compresses highlights above the breakpoint onto a half-slope line.
const (
	toneGamma      = 1.6
	toneOffset     = 1.0 / 15
	toneBreakpoint = 0.9377
)

// Tone maps one channel value in [0,1] through the retouching curve
func Tone(x float64) float64 {
	if x < toneBreakpoint {
		return math.Pow(x, toneGamma) + toneOffset
	}
	return (x-1)/2 + 1
}

// Retouch applies Tone to each clamped channel of c
func Retouch(c Color) Color {
	c = c.Clamped()
	return Color{R: Tone(c.R), G: Tone(c.G), B: Tone(c.B)}
}
