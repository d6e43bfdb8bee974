package rewrite_test

import (
	"testing"

	"bennypowers.dev/retouch/internal/color"
	"bennypowers.dev/retouch/internal/expr"
	"bennypowers.dev/retouch/internal/refit"
	"bennypowers.dev/retouch/internal/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRewriter() (*rewrite.Rewriter, *expr.Table) {
	table := expr.NewTable()
	return rewrite.New(table, refit.New(table, refit.Options{})), table
}

func retouched(t *testing.T, hex string) string {
	t.Helper()
	c, err := color.ParseHex(hex)
	require.NoError(t, err)
	return color.Retouch(c).Hex()
}

func TestVariableDefinitions(t *testing.T) {
	rw, table := newRewriter()

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "hex literal", line: "@water: #a9bcc9;", want: "@water: " + retouched(t, "#a9bcc9") + ";"},
		{name: "short hex", line: "@land: #abc;", want: "@land: " + retouched(t, "#aabbcc") + ";"},
		{name: "named color", line: "@halo: black;", want: "@halo: #111111;"},
		{name: "indentation dropped", line: "  @white: white ;", want: "@white: #ffffff;"},
		{name: "rgba passthrough", line: "@shadow: rgba(0, 0, 0, 0.3);", want: "@shadow: rgba(0, 0, 0, 0.3);"},
		{name: "reference passthrough", line: "@sea: @water;", want: "@sea: @water;"},
		{name: "unknown keyword", line: "@join: bevel;", want: "@join: bevel;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rw.Line(tt.line))
		})
	}

	assert.Equal(t, []string{"@water", "@land", "@halo", "@white", "@shadow", "@sea", "@join"}, table.Names())

	sea, err := table.Resolve(&expr.Text{Value: "@sea"})
	require.NoError(t, err)
	assert.Equal(t, "#a9bcc9", sea.Hex(), "stored values are the original colors")
}

func TestFunctionDefinition(t *testing.T) {
	rw, _ := newRewriter()

	rw.Line("@red: #ff0000;")
	assert.Equal(t, "@light-red: lighten(#ff1111, 12%);", rw.Line("@light-red: lighten(@red, 20%);"))

	// A call over a variable bound to a call is evaluated with the written amount
	got := rw.Line("@lighter-red: lighten(@light-red, 5%);")
	assert.Regexp(t, `^@lighter-red: lighten\(#[0-9a-f]{6}, -?\d+%\);$`, got)
}

func TestPropertyLines(t *testing.T) {
	rw, _ := newRewriter()
	rw.Lines([]string{
		"@red: #ff0000;",
		"@forest: #add19e;",
		"@grass: #cdebb0;",
		"@farmland: #eef0d5;",
		"@residential: #e0dfdf;",
	})

	tests := []struct {
		name  string
		line  string
		want  string
		match string
	}{
		{
			name: "single call",
			line: "  polygon-fill: lighten(@red, 20%);",
			want: "  polygon-fill: lighten(#ff1111, 12%);",
		},
		{
			name:  "chain",
			line:  "  line-color: saturate(darken(@red, 10%), 5%);",
			match: `^  line-color: saturate\(darken\(#ff1111, -?\d+%\), -?\d+%\);$`,
		},
		{
			name:  "mix",
			line:  "  polygon-fill: mix(lighten(@red, 20%), darken(@red, 10%), 50%);",
			match: `^  polygon-fill: mix\(lighten\(#ff1111, 12%\), darken\(#ff1111, \d+%\), 50%\);$`,
		},
		{
			name: "identity rescale",
			line: "  image-filters: scale-hsla(0,1,0,1,0,1,0,1);",
			want: "  image-filters: scale-hsla(0,1,0,1,0,   1,   0,1);",
		},
		{
			name:  "calibrated rescale",
			line:  "  image-filters: scale-hsla(0,1,0,1,0.2,0.9,0,1);",
			match: `^  image-filters: scale-hsla\(0,1,0,1,-?\d+\.\d{2},-?\d+\.\d{2},0,1\);$`,
		},
		{
			name: "hex literals",
			line: "  line-color: #000; [zoom >= 14] { line-color: #fff; }",
			want: "  line-color: #111111; [zoom >= 14] { line-color: #ffffff; }",
		},
		{
			name: "unsupported function keeps text, retouches literals",
			line: "  text-halo-fill: fadeout(#000, 30%);",
			want: "  text-halo-fill: fadeout(#111111, 30%);",
		},
		{
			name: "plain text",
			line: "  line-width: 2;",
			want: "  line-width: 2;",
		},
		{
			name: "empty line",
			line: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rw.Line(tt.line)
			if tt.match != "" {
				assert.Regexp(t, tt.match, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFailuresDegradeToPassthrough(t *testing.T) {
	rw, table := newRewriter()

	tests := []struct {
		name string
		line string
	}{
		{name: "undefined variable", line: "  line-color: lighten(@nope, 10%);"},
		{name: "rescale without palette", line: "  image-filters: scale-hsla(0,1,0,1,0.1,0.9,0,1);"},
		{name: "mix over undefined", line: "  polygon-fill: mix(lighten(@a, 1%), darken(@b, 2%), 50%);"},
		{name: "deep chain", line: "  line-color: saturate(darken(lighten(#ff0000, 1%), 2%), 3%);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw.ResetStats()
			assert.Equal(t, tt.line, rw.Line(tt.line))
			assert.Equal(t, 1, rw.Stats().Failures)
		})
	}

	t.Run("deep chain definition is stored as text", func(t *testing.T) {
		line := "@deep: saturate(darken(lighten(#ff0000, 1%), 2%), 3%);"
		assert.Equal(t, line, rw.Line(line))

		v, err := table.Lookup("@deep")
		require.NoError(t, err)
		assert.IsType(t, &expr.Text{}, v.Value)
	})
}

// TestForwardReference checks that a reference only resolves after its definition
func TestForwardReference(t *testing.T) {
	rw, _ := newRewriter()

	out := rw.Lines([]string{
		"  polygon-fill: lighten(@later, 20%);",
		"@later: #ff0000;",
		"  polygon-fill: lighten(@later, 20%);",
	})

	require.Len(t, out, 3)
	assert.Equal(t, "  polygon-fill: lighten(@later, 20%);", out[0])
	assert.Equal(t, "@later: #ff1111;", out[1])
	assert.Equal(t, "  polygon-fill: lighten(#ff1111, 12%);", out[2])
}

// TestVariablesCarryAcrossFiles checks that one Rewriter shares definitions between inputs
func TestVariablesCarryAcrossFiles(t *testing.T) {
	rw, _ := newRewriter()

	first := rw.Lines([]string{"@red: #ff0000;"})
	second := rw.Lines([]string{"#x { line-color: lighten(@red, 20%); }"})

	assert.Equal(t, []string{"@red: #ff1111;"}, first)
	assert.Equal(t, []string{"#x { line-color: lighten(#ff1111, 12%); }"}, second)
}

func TestStats(t *testing.T) {
	rw, _ := newRewriter()
	rw.Lines([]string{
		"@red: #ff0000;",
		"  line-color: lighten(@red, 20%);",
		"  polygon-fill: #abc;",
		"  image-filters: scale-hsla(0,1,0,1,0,1,0,1);",
		"  line-width: 1;",
	})

	stats := rw.Stats()
	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, 1, stats.Definitions)
	assert.Equal(t, 2, stats.Literals)
	assert.Equal(t, 1, stats.Calls)
	assert.Equal(t, 1, stats.Scales)
	assert.Equal(t, 0, stats.Failures)

	var total rewrite.Stats
	total.Add(stats)
	total.Add(stats)
	assert.Equal(t, 10, total.Lines)

	rw.ResetStats()
	assert.Equal(t, rewrite.Stats{}, rw.Stats())
}
