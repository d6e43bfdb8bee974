package color

import (
	"fmt"
	"math"
)

// Func is one of the HSL adjustment functions a stylesheet can call
type Func int

const (
	Lighten Func = iota + 1
	Darken
	Saturate
	Desaturate
)

var funcNames = map[Func]string{
	Lighten:    "lighten",
	Darken:     "darken",
	Saturate:   "saturate",
	Desaturate: "desaturate",
}

// ParseFunc maps a stylesheet function name to a Func.
// The second result is false for names outside the supported set.
func ParseFunc(name string) (Func, bool) {
	for f, n := range funcNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

func (f Func) String() string {
	if name, ok := funcNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Func(%d)", int(f))
}

// Apply runs the adjustment on c with a percentage amount
func (f Func) Apply(c Color, amount float64) Color {
	switch f {
	case Lighten:
		return LightenBy(c, amount)
	case Darken:
		return DarkenBy(c, amount)
	case Saturate:
		return SaturateBy(c, amount)
	case Desaturate:
		return DesaturateBy(c, amount)
	default:
		panic(fmt.Sprintf("color: unsupported adjustment %v", f))
	}
}

// LightenBy adds amount/100 to the HSL lightness, clipped to [0,1]
func LightenBy(c Color, amount float64) Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, clip01(l+amount/100))
}

func DarkenBy(c Color, amount float64) Color {
	return LightenBy(c, -amount)
}

// SaturateBy adds amount/100 to the HSL saturation, clipped to [0,1]
func SaturateBy(c Color, amount float64) Color {
	h, s, l := c.HSL()
	return FromHSL(h, clip01(s+amount/100), l)
}

func DesaturateBy(c Color, amount float64) Color {
	return SaturateBy(c, -amount)
}

// ScaleLightness remaps HSL lightness L to l0 + L*(l1-l0). No clipping is applied.
func ScaleLightness(c Color, l0, l1 float64) Color {
	h, s, l := c.HSL()
	return FromHSL(h, s, l0+l*(l1-l0))
}

func clip01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
