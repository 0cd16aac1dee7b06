package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/qsynth/internal/config"
	"github.com/roach88/qsynth/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeInvalidInput = "E002" // Malformed truth table
	ErrCodeConfig       = "E003" // Config file missing or invalid
	ErrCodeDatabase     = "E004" // Message database could not be opened
	ErrCodeServe        = "E005" // Server failed while running
)

// NewRootCommand creates the root command for the qsynth CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qsynth",
		Short: "qsynth - quantum oracle synthesis",
		Long: `Synthesize phase oracles from truth tables and serve the
circuit-optimization progress stream.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|text)")

	cmd.AddCommand(NewOracleCommand(opts))
	cmd.AddCommand(NewExprCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// diagnosticLogger returns a debug logger on stderr in verbose mode and a
// no-op logger otherwise. Stdout is reserved for command output.
func diagnosticLogger(opts *RootOptions) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}
	logger, _, err := logging.New(logging.Verbose(config.Default().Log))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
