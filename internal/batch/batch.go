package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/retouch/internal/collections"
	"bennypowers.dev/retouch/internal/config"
	"bennypowers.dev/retouch/internal/log"
	"bennypowers.dev/retouch/internal/rewrite"
)

// Runner rewrites the configured stylesheets in order with one Rewriter,
// so variables defined in earlier files are visible to later ones.
type Runner struct {
	cfg      config.Config
	rewriter *rewrite.Rewriter
}

// Result summarizes one processed file
type Result struct {
	Source string
	Output string
	Stats  rewrite.Stats
}

// NewRunner creates a runner for cfg
func NewRunner(cfg config.Config, rewriter *rewrite.Rewriter) *Runner {
	return &Runner{cfg: cfg, rewriter: rewriter}
}

// Run processes every configured file. A file that cannot be read or
// written is reported and skipped; the remaining files are still processed
// and all failures are returned together.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	names, err := r.expandFiles()
	if err != nil {
		return nil, err
	}

	log.Info("Retouching %d stylesheets from %s into %s", len(names), r.cfg.SourceDir, r.cfg.OutputDir)

	var results []Result
	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := r.processFile(name)
		if err != nil {
			log.Error("Failed to process %s: %v", name, err)
			errs = append(errs, fmt.Errorf("failed to process %s: %w", name, err))
			continue
		}
		results = append(results, result)
		log.Info("Rewrote %s -> %s (%d definitions, %d calls, %d literals, %d failures)",
			result.Source, result.Output, result.Stats.Definitions, result.Stats.Calls+result.Stats.Mixes+result.Stats.Scales,
			result.Stats.Literals, result.Stats.Failures)
	}

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}
	return results, nil
}

// expandFiles resolves configured names, expanding glob patterns against
// the source directory in place. A file named more than once is processed
// at its first position only.
func (r *Runner) expandFiles() ([]string, error) {
	names := collections.NewOrderedSet[string]()
	for _, entry := range r.cfg.Files {
		if !hasMeta(entry) {
			if names.Add(entry) == 0 {
				log.Debug("Skipping duplicate stylesheet %s", entry)
			}
			continue
		}

		pattern := filepath.ToSlash(entry) + r.cfg.Extension
		matches, err := doublestar.Glob(os.DirFS(r.cfg.SourceDir), pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", entry, err)
		}
		sort.Strings(matches)
		if len(matches) == 0 {
			log.Warn("Pattern %s matched no stylesheets in %s", entry, r.cfg.SourceDir)
		}
		for _, m := range matches {
			names.Add(strings.TrimSuffix(m, r.cfg.Extension))
		}
	}
	return names.Members(), nil
}

func (r *Runner) processFile(name string) (Result, error) {
	source := filepath.Join(r.cfg.SourceDir, filepath.FromSlash(name)+r.cfg.Extension)
	output := filepath.Join(r.cfg.OutputDir, filepath.FromSlash(name)+r.cfg.Extension)

	data, err := os.ReadFile(source) //nolint:gosec // G304: stylesheet paths come from the run configuration
	if err != nil {
		return Result{}, err
	}

	r.rewriter.ResetStats()
	lines, trailingNewline := splitLines(string(data))
	out := r.rewriter.Lines(lines)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(joinLines(out, trailingNewline)), 0o644); err != nil { //nolint:gosec // G306: stylesheets are not secret
		return Result{}, fmt.Errorf("failed to write %s: %w", output, err)
	}

	return Result{Source: source, Output: output, Stats: r.rewriter.Stats()}, nil
}

// splitLines splits text into lines without terminators. CRLF endings are
// normalized to LF.
func splitLines(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n"), trailing
}

func joinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
