package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/retouch/internal/batch"
	"bennypowers.dev/retouch/internal/config"
	"bennypowers.dev/retouch/internal/expr"
	"bennypowers.dev/retouch/internal/refit"
	"bennypowers.dev/retouch/internal/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, files map[string]string, names ...string) (config.Config, *batch.Runner) {
	t.Helper()
	src := t.TempDir()
	for name, content := range files {
		path := filepath.Join(src, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.SourceDir = src
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Files = names

	table := expr.NewTable()
	rw := rewrite.New(table, refit.New(table, refit.Options{}))
	return cfg, batch.NewRunner(cfg, rw)
}

func readOutput(t *testing.T, cfg config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunRewritesFilesInOrder(t *testing.T) {
	cfg, runner := setup(t, map[string]string{
		"style.mss": "@red: #ff0000;\n@water: #a9bcc9;\n",
		"roads.mss": "#roads {\n  line-color: lighten(@red, 20%);\n}\n",
	}, "style", "roads")

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	style := readOutput(t, cfg, "style.mss")
	assert.Equal(t, "@red: #ff1111;\n@water: #95aebf;\n", style)

	roads := readOutput(t, cfg, "roads.mss")
	assert.Equal(t, "#roads {\n  line-color: lighten(#ff1111, 12%);\n}\n", roads)

	assert.Equal(t, 2, results[0].Stats.Definitions)
	assert.Equal(t, 1, results[1].Stats.Calls)
	assert.Equal(t, 3, results[1].Stats.Lines)
}

func TestRunPreservesLineCount(t *testing.T) {
	input := "@a: #000;\r\n\r\n  line-width: 1;\r\n  line-color: #fff;"
	cfg, runner := setup(t, map[string]string{"water.mss": input}, "water")

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "@a: #111111;\n\n  line-width: 1;\n  line-color: #ffffff;", readOutput(t, cfg, "water.mss"))
}

func TestRunContinuesAfterMissingFile(t *testing.T) {
	cfg, runner := setup(t, map[string]string{"water.mss": "@water: #a9bcc9;\n"}, "missing", "water")

	results, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing")

	require.Len(t, results, 1)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "water.mss"))
}

func TestRunExpandsPatterns(t *testing.T) {
	cfg, runner := setup(t, map[string]string{
		"style.mss":            "@red: #ff0000;\n",
		"roads-major.mss":      "  line-color: darken(@red, 10%);\n",
		"roads-minor.mss":      "  line-color: #000;\n",
		"nested/labels.mss":    "  text-fill: #fff;\n",
		"roads-major.mss.orig": "ignored\n",
	}, "style", "roads-*", "**/labels")

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, filepath.Join(cfg.SourceDir, "style.mss"), results[0].Source)
	assert.Equal(t, filepath.Join(cfg.SourceDir, "roads-major.mss"), results[1].Source)
	assert.Equal(t, filepath.Join(cfg.SourceDir, "roads-minor.mss"), results[2].Source)
	assert.Equal(t, filepath.Join(cfg.SourceDir, "nested", "labels.mss"), results[3].Source)

	assert.Equal(t, "  text-fill: #ffffff;\n", readOutput(t, cfg, filepath.Join("nested", "labels.mss")))
}

func TestRunSkipsDuplicateNames(t *testing.T) {
	_, runner := setup(t, map[string]string{
		"roads-major.mss": "  line-color: #000;\n",
		"roads-minor.mss": "  line-color: #fff;\n",
	}, "roads-minor", "roads-*")

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Source, "roads-minor.mss")
	assert.Contains(t, results[1].Source, "roads-major.mss")
}

func TestRunHonorsCancellation(t *testing.T) {
	_, runner := setup(t, map[string]string{"water.mss": "@water: #a9bcc9;\n"}, "water")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
