package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/qsynth/internal/oracle"
)

// OracleOptions holds flags for the oracle command.
type OracleOptions struct {
	*RootOptions
	Verify bool

	// Runner allows overriding the synthesizer (for testing).
	// If nil, an uncached oracle.Service is used.
	Runner oracle.Runner
}

// NewOracleCommand creates the oracle command.
func NewOracleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OracleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "oracle [truth-table]",
		Short: "Synthesize a phase oracle from a truth table",
		Long: `Synthesize a phase oracle circuit from a truth-table bitstring.

Row i of the table is the function value for the input whose bit j is
variable xj. The circuit is decomposed twice, drawn in black and white,
and printed as one JSON object with the qubit count, OpenQASM 2.0 text
and a base64 PNG.

Synthesis failures are reported in the output and exit with status 0.

Example:
  qsynth oracle 0110
  qsynth oracle '"1010"' --verify`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOracle(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "simulate the circuit and check its phases against the table")

	return cmd
}

func runOracle(opts *OracleOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := diagnosticLogger(opts.RootOptions)
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		return outputOracle(formatter, oracle.NoInput())
	}
	if len(args) > 1 {
		logger.Debug("ignoring extra arguments", zap.Strings("args", args[1:]))
	}

	runner := opts.Runner
	if runner == nil {
		svc, err := oracle.NewService(logger, oracle.WithVerify(opts.Verify))
		if err != nil {
			return WrapExitError(ExitFailure, "failed to create oracle service", err)
		}
		runner = svc
	}

	return outputOracle(formatter, runner.Run(args[0]))
}

// outputOracle prints resp. JSON output is the bare response object.
func outputOracle(formatter *OutputFormatter, resp oracle.Response) error {
	if formatter.Format == "json" {
		return formatter.Raw(resp)
	}

	if !resp.Success {
		fmt.Fprintf(formatter.Writer, "✗ %s\n", resp.Error)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ Synthesized oracle on %d qubit(s)\n\n", resp.NumQubits)
	fmt.Fprint(formatter.Writer, resp.QASM)
	formatter.VerboseLog("PNG: %d base64 bytes", len(resp.Image))
	return nil
}
