package refit

import (
	"gonum.org/v1/gonum/optimize"

	"bennypowers.dev/retouch/internal/log"
)

// Problem is a local minimization over a small parameter vector
type Problem struct {
	// Objective is the value to minimize
	Objective func(x []float64) float64
	// Initial is the starting point; for re-fitting it is always the
	// parameters written in the stylesheet
	Initial []float64
	// Step is the initial simplex edge length for each parameter
	Step float64
}

// Minimizer finds a local minimum of a Problem.
// Implementations always return a point, falling back to Initial when the
// search fails outright.
type Minimizer interface {
	Minimize(p Problem) []float64
}

// Default search limits
const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 2000
)

// NelderMead is a derivative-free simplex search backed by gonum
type NelderMead struct {
	// Tolerance is the smallest objective improvement that still counts
	// as progress
	Tolerance float64
	// MaxIterations caps major iterations
	MaxIterations int
}

// NewNelderMead returns a minimizer with the default limits
func NewNelderMead() *NelderMead {
	return &NelderMead{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

// Minimize runs the simplex search from p.Initial
func (n *NelderMead) Minimize(p Problem) []float64 {
	x0 := make([]float64, len(p.Initial))
	copy(x0, p.Initial)

	tol := n.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := n.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	problem := optimize.Problem{Func: p.Objective}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol * tol,
			Iterations: 50,
		},
	}
	method := &optimize.NelderMead{SimplexSize: p.Step}

	result, err := optimize.Minimize(problem, x0, settings, method)
	if result == nil || len(result.X) != len(x0) {
		log.Warn("Minimizer returned no location (%v), keeping %v", err, x0)
		return x0
	}
	if err != nil {
		log.Debug("Minimizer stopped early at %v: %v", result.X, err)
	}
	return result.X
}
