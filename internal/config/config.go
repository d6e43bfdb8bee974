package config

import (
	"bennypowers.dev/retouch/internal/refit"
)

// OptimizerConfig tunes the parameter search
type OptimizerConfig struct {
	// Tolerance is the convergence tolerance of the simplex search
	Tolerance float64 `yaml:"tolerance" json:"tolerance" validate:"gt=0"`

	// MaxIterations caps the search per call
	MaxIterations int `yaml:"maxIterations" json:"maxIterations" validate:"gt=0"`
}

// Config describes one retouching run
type Config struct {
	// SourceDir holds the original stylesheets
	// Default: "mss"
	SourceDir string `yaml:"sourceDir" json:"sourceDir" validate:"required"`

	// OutputDir receives the rewritten stylesheets under the same names
	// Default: "."
	OutputDir string `yaml:"outputDir" json:"outputDir" validate:"required"`

	// Extension is appended to every base name in Files
	// Default: ".mss"
	Extension string `yaml:"extension" json:"extension" validate:"required,startswith=."`

	// Files are stylesheet base names, processed in order. Variables defined
	// in one file are visible to every later file. Entries may be doublestar
	// glob patterns relative to SourceDir, e.g. "roads-*".
	Files []string `yaml:"files" json:"files" validate:"required,min=1,dive,required"`

	// Palette names the variables a scale-hsla rescale is calibrated against
	// Default: ["@forest", "@grass", "@farmland", "@residential"]
	Palette []string `yaml:"palette" json:"palette" validate:"required,min=1,dive,variable"`

	// KeepReferences writes variable arguments of re-fitted calls by name
	// instead of as retouched hex colors
	KeepReferences bool `yaml:"keepReferences" json:"keepReferences"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" json:"logLevel" validate:"oneof=debug info warn error"`

	Optimizer OptimizerConfig `yaml:"optimizer" json:"optimizer"`
}

// DefaultFiles is the stylesheet list of the OpenStreetMap Carto style,
// in dependency order
var DefaultFiles = []string{
	"style",
	"landcover",
	"water",
	"water-features",
	"road-colors-generated",
	"roads",
	"power",
	"admin",
	"placenames",
	"buildings",
	"stations",
	"amenity-points",
	"ferry-routes",
	"aerialways",
	"addressing",
}

// Default returns the default configuration
func Default() Config {
	files := make([]string, len(DefaultFiles))
	copy(files, DefaultFiles)
	palette := make([]string, len(refit.DefaultPalette))
	copy(palette, refit.DefaultPalette)

	return Config{
		SourceDir: "mss",
		OutputDir: ".",
		Extension: ".mss",
		Files:     files,
		Palette:   palette,
		LogLevel:  "info",
		Optimizer: OptimizerConfig{
			Tolerance:     refit.DefaultTolerance,
			MaxIterations: refit.DefaultMaxIterations,
		},
	}
}
