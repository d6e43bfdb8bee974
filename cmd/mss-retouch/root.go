package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/retouch/internal/batch"
	"bennypowers.dev/retouch/internal/config"
	"bennypowers.dev/retouch/internal/expr"
	"bennypowers.dev/retouch/internal/log"
	"bennypowers.dev/retouch/internal/refit"
	"bennypowers.dev/retouch/internal/rewrite"
)

type rootFlags struct {
	configPath     string
	sourceDir      string
	outputDir      string
	keepReferences bool
	verbose        bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "mss-retouch [files...]",
		Short: "Retouch the colors of CartoCSS stylesheets through a fixed tone curve",
		Long: `mss-retouch rewrites .mss stylesheets so every color passes through the
retouching tone curve. Color adjustment calls keep their structure; their
arguments are re-fitted so the adjusted colors match the retouched originals.

Files are base names relative to the source directory, without extension.
Glob patterns such as "roads-*" are expanded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			return runBatch(cmd, cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file (.yaml, .yml, .json, .jsonc)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVar(&flags.sourceDir, "source-dir", "", "Directory holding the original stylesheets")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory receiving the retouched stylesheets")
	cmd.Flags().BoolVar(&flags.keepReferences, "keep-references", false, "Write variable arguments of re-fitted calls by name")

	cmd.AddCommand(newColorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig builds the run configuration: defaults, then the config file,
// then command line overrides
func loadConfig(cmd *cobra.Command, flags *rootFlags, args []string) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("source-dir") {
		cfg.SourceDir = flags.sourceDir
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = flags.outputDir
	}
	if cmd.Flags().Changed("keep-references") {
		cfg.KeepReferences = flags.keepReferences
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	if len(args) > 0 {
		cfg.Files = args
	}

	if err := config.Validate(&cfg); err != nil {
		return cfg, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	return cfg, nil
}

func runBatch(cmd *cobra.Command, cfg config.Config) error {
	table := expr.NewTable()
	refitter := refit.New(table, refit.Options{
		Minimizer: &refit.NelderMead{
			Tolerance:     cfg.Optimizer.Tolerance,
			MaxIterations: cfg.Optimizer.MaxIterations,
		},
		Palette:        cfg.Palette,
		KeepReferences: cfg.KeepReferences,
	})
	runner := batch.NewRunner(cfg, rewrite.New(table, refitter))

	results, err := runner.Run(cmd.Context())

	var total rewrite.Stats
	for _, r := range results {
		total.Add(r.Stats)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Retouched %d files: %d definitions, %d calls, %d mixes, %d rescales, %d literals, %d failures\n",
		len(results), total.Definitions, total.Calls, total.Mixes, total.Scales, total.Literals, total.Failures)

	return err
}
