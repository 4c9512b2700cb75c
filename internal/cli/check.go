package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrProblems is returned by check when failing diagnostics were reported.
var ErrProblems = errors.New("documentation problems found")

// NewCheckCommand creates the check command.
func NewCheckCommand(v *viper.Viper) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report documentation problems without printing docstrings",
		Long: `Check assembles the docstrings of the packages and reports every
notification: unresolved annotations, missing fragments, invalid markers and
struct tags. It fails when errors or alerts were reported, or any
notification at all with --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(v)
			if err != nil {
				return err
			}
			defer r.close()

			modules, err := r.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			a, err := r.assembler()
			if err != nil {
				return err
			}

			for _, module := range modules {
				a.Decorate(module)
			}

			out := cmd.OutOrStdout()
			writeDiagnostics(out, r.diags.All())
			fmt.Fprintln(out, summary(r.diags))

			if r.diags.HasErrors() || (strict && r.diags.Len() > 0) {
				return ErrProblems
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on admonitions too")

	return cmd
}
