package cli

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dynadoc/internal/introspect"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
	MaxDepth:                6,
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(v *viper.Viper) *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "dump [packages...]",
		Short: "Dump the raw introspection records of a package or member",
		Args:  cobra.MinimumNArgs(1),
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

			control, err := r.file.Control()
			if err != nil {
				return err
			}

			ctx := r.introspectionContext()
			out := cmd.OutOrStdout()

			for _, module := range modules {
				subject, err := lookup(module, symbol)
				if err != nil {
					return err
				}

				infos := introspect.Introspect(subject, ctx, control.EvaluateLimitsFor(subject), nil, r.file.Table())
				headingColor.Fprintln(out, subject.FullName())
				dumpConfig.Fdump(out, infos)
			}

			writeDiagnostics(cmd.ErrOrStderr(), r.diags.All())

			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "dotted member path to dump instead of whole packages")

	return cmd
}
