package refit

import (
	"fmt"
	"math"

	"bennypowers.dev/retouch/internal/color"
	"bennypowers.dev/retouch/internal/expr"
	"bennypowers.dev/retouch/internal/log"
)

// DefaultPalette are the variables a global lightness rescale is calibrated
// against. They cover the large landuse areas whose look the rescale is meant
// to control.
var DefaultPalette = []string{"@forest", "@grass", "@farmland", "@residential"}

// IdentityScaleHSLA is emitted verbatim for scale-hsla calls that leave
// lightness unchanged
const IdentityScaleHSLA = "scale-hsla(0,1,0,1,0,   1,   0,1)"

// Initial simplex sizes: one percentage point for adjustment amounts and
// 0.05 for lightness bounds.
const (
	percentStep   = 1.0
	lightnessStep = 0.05
)

// Options configures a Refitter
type Options struct {
	// Minimizer defaults to NewNelderMead()
	Minimizer Minimizer
	// Palette defaults to DefaultPalette
	Palette []string
	// KeepReferences renders a variable argument by name instead of the
	// hex of its retouched color
	KeepReferences bool
}

// Refitter recomputes adjustment parameters so that adjusting retouched
// base colors lands on the retouched result of the original adjustment.
type Refitter struct {
	table          *expr.Table
	minimizer      Minimizer
	palette        []string
	keepReferences bool
}

// New creates a Refitter that resolves variables through table
func New(table *expr.Table, opts Options) *Refitter {
	r := &Refitter{
		table:          table,
		minimizer:      opts.Minimizer,
		palette:        opts.Palette,
		keepReferences: opts.KeepReferences,
	}
	if r.minimizer == nil {
		r.minimizer = NewNelderMead()
	}
	if len(r.palette) == 0 {
		r.palette = DefaultPalette
	}
	return r
}

// FitSingle finds x so that fn(Retouch(base), x) is closest to
// Retouch(fn(base, value)), starting the search at value.
func (r *Refitter) FitSingle(fn color.Func, base color.Color, value float64) float64 {
	goal := color.Retouch(fn.Apply(base, value))
	baseT := color.Retouch(base)

	x := r.minimizer.Minimize(Problem{
		Objective: func(x []float64) float64 {
			return color.Distance(fn.Apply(baseT, x[0]), goal)
		},
		Initial: []float64{value},
		Step:    percentStep,
	})
	return x[0]
}

// FitChain is FitSingle for outer(inner(base, v1), v2), fitting both
// amounts jointly.
func (r *Refitter) FitChain(inner color.Func, v1 float64, outer color.Func, v2 float64, base color.Color) (float64, float64) {
	goal := color.Retouch(outer.Apply(inner.Apply(base, v1), v2))
	baseT := color.Retouch(base)

	x := r.minimizer.Minimize(Problem{
		Objective: func(x []float64) float64 {
			return color.Distance(outer.Apply(inner.Apply(baseT, x[0]), x[1]), goal)
		},
		Initial: []float64{v1, v2},
		Step:    percentStep,
	})
	return x[0], x[1]
}

// FitScale fits lightness bounds (l0, l1) against the reference palette,
// minimizing the summed distance over all palette colors.
func (r *Refitter) FitScale(l0, l1 float64) (float64, float64, error) {
	refs := make([]color.Color, 0, len(r.palette))
	for _, name := range r.palette {
		c, err := r.table.Resolve(&expr.Text{Value: name})
		if err != nil {
			return 0, 0, fmt.Errorf("palette color %s: %w", name, err)
		}
		refs = append(refs, c)
	}

	goals := make([]color.Color, len(refs))
	refsT := make([]color.Color, len(refs))
	for i, c := range refs {
		goals[i] = color.Retouch(color.ScaleLightness(c, l0, l1))
		refsT[i] = color.Retouch(c)
	}

	x := r.minimizer.Minimize(Problem{
		Objective: func(x []float64) float64 {
			sum := 0.0
			for i, c := range refsT {
				sum += color.Distance(color.ScaleLightness(c, x[0], x[1]), goals[i])
			}
			return sum
		},
		Initial: []float64{l0, l1},
		Step:    lightnessStep,
	})
	return x[0], x[1], nil
}

// RewriteCall re-fits a single call or a two-level chain and renders it
// with the retouched base color.
func (r *Refitter) RewriteCall(call *expr.Call) (string, error) {
	if inner, ok := call.Arg.(*expr.Call); ok {
		return r.rewriteChain(inner, call)
	}

	base, err := r.table.Resolve(call.Arg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", call, err)
	}
	value, err := call.Amount()
	if err != nil {
		return "", err
	}

	x := r.FitSingle(call.Func, base, value)
	log.Debug("Fitted %s: %s -> %.4f", call, call.Value, x)

	return fmt.Sprintf("%s(%s, %d%%)", call.Func, r.renderBase(call.Arg, base), roundPercent(x)), nil
}

func (r *Refitter) rewriteChain(inner, outer *expr.Call) (string, error) {
	if depth := outer.Depth(); depth > expr.MaxCallDepth {
		return "", expr.NewUnsupportedNestingError(outer.String(), depth)
	}

	base, err := r.table.Resolve(inner.Arg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", outer, err)
	}
	v1, err := inner.Amount()
	if err != nil {
		return "", err
	}
	v2, err := outer.Amount()
	if err != nil {
		return "", err
	}

	x1, x2 := r.FitChain(inner.Func, v1, outer.Func, v2, base)
	log.Debug("Fitted %s: (%s, %s) -> (%.4f, %.4f)", outer, inner.Value, outer.Value, x1, x2)

	return fmt.Sprintf("%s(%s(%s, %d%%), %d%%)",
		outer.Func, inner.Func, r.renderBase(inner.Arg, base), roundPercent(x1), roundPercent(x2)), nil
}

// RewriteScale re-fits a lightness rescale. The identity rescale is
// returned as IdentityScaleHSLA without running the search.
func (r *Refitter) RewriteScale(l0, l1 float64) (string, error) {
	if l0 == 0 && l1 == 1 {
		return IdentityScaleHSLA, nil
	}

	x0, x1, err := r.FitScale(l0, l1)
	if err != nil {
		return "", err
	}
	log.Debug("Fitted scale-hsla: (%g, %g) -> (%.4f, %.4f)", l0, l1, x0, x1)

	return fmt.Sprintf("scale-hsla(0,1,0,1,%.2f,%.2f,0,1)", x0, x1), nil
}

func (r *Refitter) renderBase(arg expr.Expr, base color.Color) string {
	if r.keepReferences {
		if text, ok := arg.(*expr.Text); ok {
			if name, ok := text.Reference(); ok {
				return name
			}
		}
	}
	return color.Retouch(base).Hex()
}

// roundPercent rounds half to even and never yields negative zero
func roundPercent(x float64) int {
	return int(math.RoundToEven(x))
}
