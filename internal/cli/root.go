// Package cli implements the menuctl command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/imaging"
	"carte/internal/logger"
	"carte/internal/parser"
	"carte/internal/parser/providers"
	"carte/internal/service"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string

	// deps builds the model-backed services; replaced in tests.
	deps func(opts *RootOptions) (*Deps, error)
}

// Deps are the services the online commands run against.
type Deps struct {
	Extraction service.ExtractionService
	Wildcard   service.WildcardService
	Normalizer *imaging.Normalizer
	Logger     *zap.Logger
}

// NewRootCommand creates the root command for menuctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{deps: loadDeps})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "menuctl",
		Short:         "Translate menu photos from the terminal",
		Long:          "menuctl extracts a translated menu from photos, picks dishes for a party and merges page results offline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	// Add subcommands
	cmd.AddCommand(newParseCommand(opts))
	cmd.AddCommand(newPickCommand(opts))
	cmd.AddCommand(newMergeCommand(opts))
	cmd.AddCommand(newLanguagesCommand(opts))

	return cmd
}

// Execute runs menuctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", service.DescribeError(err))
		os.Exit(1)
	}
}

func loadDeps(opts *RootOptions) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	lg := logger.NewWithWriter(level, "console", os.Stderr)

	providers.Register()
	model, err := parser.NewModelChain(&cfg.Parser, lg)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Extraction: service.NewExtractionService(model, nil, &cfg.Extraction, lg),
		Wildcard:   service.NewWildcardService(model, &cfg.Extraction, lg),
		Normalizer: imaging.NewNormalizer(imaging.CompressOptions{
			MaxPixels:    cfg.Imaging.MaxPixels,
			MaxEdge:      cfg.Imaging.MaxEdge,
			MaxBytes:     cfg.Imaging.MaxBytes,
			StartQuality: cfg.Imaging.StartQuality,
			MinQuality:   cfg.Imaging.MinQuality,
			QualityStep:  cfg.Imaging.QualityStep,
		}, cfg.Extraction.Concurrency, lg),
		Logger: lg,
	}, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
