package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/qsynth/internal/logic"
	"github.com/roach88/qsynth/internal/oracle"
)

// ExprResult is the expr command's JSON payload.
type ExprResult struct {
	Table      string   `json:"table"`
	Expression string   `json:"expression"`
	Variables  []string `json:"variables"`
}

// NewExprCommand creates the expr command.
func NewExprCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expr <truth-table>",
		Short: "Print the DNF expression for a truth table",
		Long: `Print the disjunctive normal form the oracle command synthesizes from.

Example:
  qsynth expr 0110
  qsynth expr 10010110 --format text`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpr(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runExpr(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	table := oracle.NormalizeArg(arg)
	expr, err := logic.FromTruthTable(table)
	if err != nil {
		if outErr := formatter.Error(ErrCodeInvalidInput, err.Error(), map[string]string{"table": table}); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "invalid truth table", err)
	}

	n, _ := logic.NumVariables(table)
	vars := make([]string, n)
	for j := range vars {
		vars[j] = logic.VariableName(j)
	}
	formatter.VerboseLog("%d variable(s), %d row(s)", n, len(table))

	if formatter.Format == "json" {
		return formatter.Success(ExprResult{Table: table, Expression: expr, Variables: vars})
	}
	if expr == "" {
		return formatter.Success("(constant false)")
	}
	return formatter.Success(expr)
}
