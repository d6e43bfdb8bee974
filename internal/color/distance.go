package color

import "gonum.org/v1/gonum/floats"

// Distance is the Euclidean distance between a and b in RGB space.
// Channels are compared unclamped.
func Distance(a, b Color) float64 {
	return floats.Distance(a.channels(), b.channels(), 2)
}

func (c Color) channels() []float64 {
	return []float64{c.R, c.G, c.B}
}
