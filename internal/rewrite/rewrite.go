package rewrite

import (
	"strconv"

	"bennypowers.dev/retouch/internal/color"
	"bennypowers.dev/retouch/internal/expr"
	"bennypowers.dev/retouch/internal/log"
	"bennypowers.dev/retouch/internal/parser"
	"bennypowers.dev/retouch/internal/refit"
)

// Stats counts what a Rewriter changed
type Stats struct {
	Lines       int
	Definitions int
	Literals    int
	Calls       int
	Mixes       int
	Scales      int
	// Failures counts constructs left unchanged because they could not be
	// parsed, resolved or evaluated
	Failures int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Lines += other.Lines
	s.Definitions += other.Definitions
	s.Literals += other.Literals
	s.Calls += other.Calls
	s.Mixes += other.Mixes
	s.Scales += other.Scales
	s.Failures += other.Failures
}

// Rewriter retouches stylesheet lines one at a time.
//
// Each line is classified once, in this order: variable definition,
// scale-hsla rescale, mix of two calls, adjustment call, hex literals.
// Only the first category that matches is rewritten; within it every
// non-overlapping match is replaced. Definitions are stored in the symbol
// table so later lines, and later files, can reference them.
type Rewriter struct {
	table    *expr.Table
	refitter *refit.Refitter
	stats    Stats
}

// New creates a Rewriter over table
func New(table *expr.Table, refitter *refit.Refitter) *Rewriter {
	return &Rewriter{table: table, refitter: refitter}
}

// Stats returns the counters accumulated since the last ResetStats
func (rw *Rewriter) Stats() Stats {
	return rw.stats
}

// ResetStats zeroes the counters; the symbol table is kept
func (rw *Rewriter) ResetStats() {
	rw.stats = Stats{}
}

// Lines rewrites a sequence of lines, one output line per input line
func (rw *Rewriter) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = rw.Line(line)
	}
	return out
}

// Line rewrites a single line, given without its line terminator
func (rw *Rewriter) Line(line string) string {
	rw.stats.Lines++

	if def, ok := parser.ParseVariableLine(line); ok {
		return rw.definition(def)
	}
	if matches := parser.FindAll(parser.ScaleHSLARegexp, line); len(matches) > 0 {
		return parser.Replace(line, matches, rw.scale)
	}
	if matches := parser.FindAll(parser.MixRegexp, line); len(matches) > 0 {
		return parser.Replace(line, matches, rw.mix)
	}
	if matches := parser.FindFunctionCalls(line); len(matches) > 0 {
		return parser.Replace(line, matches, rw.function)
	}
	return rw.retouchLiterals(line)
}

func (rw *Rewriter) definition(def parser.Definition) string {
	rw.stats.Definitions++

	e, err := parser.ParseDefinition(def.Body)
	if err != nil {
		rw.fail(def.Name, err)
		e = &expr.Text{Value: def.Body}
	}
	if err := rw.table.Define(&expr.Variable{Name: def.Name, Value: e}); err != nil {
		rw.fail(def.Name, err)
	}

	return def.Name + ": " + rw.render(e, def.Body) + ";"
}

// render serializes a parsed definition; source is returned when a call
// cannot be re-fitted
func (rw *Rewriter) render(e expr.Expr, source string) string {
	switch e := e.(type) {
	case *expr.Literal:
		rw.stats.Literals++
		return color.Retouch(e.Color).Hex()
	case *expr.Text:
		return e.Value
	case *expr.Call:
		out, err := rw.refitter.RewriteCall(e)
		if err != nil {
			rw.fail(source, err)
			return source
		}
		rw.stats.Calls++
		return out
	default:
		log.Warn("Unexpected expression %T for %s", e, source)
		return source
	}
}

func (rw *Rewriter) scale(m parser.Match) string {
	l0, err0 := strconv.ParseFloat(m.Groups[1], 64)
	l1, err1 := strconv.ParseFloat(m.Groups[2], 64)
	if err0 != nil || err1 != nil {
		log.Warn("Ignoring malformed rescale %s", m.Text())
		rw.stats.Failures++
		return m.Text()
	}

	out, err := rw.refitter.RewriteScale(l0, l1)
	if err != nil {
		rw.fail(m.Text(), err)
		return m.Text()
	}
	rw.stats.Scales++
	return out
}

func (rw *Rewriter) mix(m parser.Match) string {
	first, err := rw.callText(m.Groups[1])
	if err != nil {
		rw.fail(m.Text(), err)
		return m.Text()
	}
	second, err := rw.callText(m.Groups[2])
	if err != nil {
		rw.fail(m.Text(), err)
		return m.Text()
	}
	rw.stats.Mixes++
	return "mix(" + first + ", " + second + ", " + m.Groups[3] + "%)"
}

// callText rewrites one branch of a mix
func (rw *Rewriter) callText(source string) (string, error) {
	matches := parser.FindFunctionCalls(source)
	if len(matches) == 0 || matches[0].Start != 0 {
		return rw.retouchLiterals(source), nil
	}

	m := matches[0]
	e, err := parser.ParseCall(m.Text(), m.Groups[1], m.Groups[2], m.Groups[3])
	if err != nil {
		return "", err
	}
	call, ok := e.(*expr.Call)
	if !ok {
		return rw.retouchLiterals(source), nil
	}
	out, err := rw.refitter.RewriteCall(call)
	if err != nil {
		return "", err
	}
	rw.stats.Calls++
	return out + source[m.End:], nil
}

func (rw *Rewriter) function(m parser.Match) string {
	e, err := parser.ParseCall(m.Text(), m.Groups[1], m.Groups[2], m.Groups[3])
	if err != nil {
		rw.fail(m.Text(), err)
		return m.Text()
	}

	switch e := e.(type) {
	case *expr.Call:
		out, err := rw.refitter.RewriteCall(e)
		if err != nil {
			rw.fail(m.Text(), err)
			return m.Text()
		}
		rw.stats.Calls++
		return out
	case *expr.Text, *expr.Literal:
		// Unsupported function such as fadeout(): keep it, retouch its literals
		return rw.retouchLiterals(m.Text())
	default:
		return m.Text()
	}
}

func (rw *Rewriter) retouchLiterals(s string) string {
	return parser.Replace(s, parser.FindAll(parser.HexColorRegexp, s), func(m parser.Match) string {
		c, err := color.ParseHex(m.Text())
		if err != nil {
			rw.fail(m.Text(), err)
			return m.Text()
		}
		rw.stats.Literals++
		return color.Retouch(c).Hex()
	})
}

func (rw *Rewriter) fail(source string, err error) {
	rw.stats.Failures++
	log.Warn("Leaving %s unchanged: %v", source, err)
}
