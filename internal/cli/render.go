package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dynadoc/internal/introspect"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(v *viper.Viper) *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "render [packages...]",
		Short: "Print the assembled docstrings of Go packages",
		Long: `Render loads the packages, assembles the docstring of each package and
prints it. Members of the kinds selected by --targets are documented too.

With --symbol only the named member is rendered, for example
--symbol Order.Validate.`,
		Example: "  dynadoc render ./store --targets all --style pep8",
		Args:    cobra.MinimumNArgs(1),
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

			control, err := r.file.Control()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, module := range modules {
				if symbol != "" {
					subject, err := lookup(module, symbol)
					if err != nil {
						return err
					}

					writeDoc(out, subject.FullName(), a.Docstring(subject))

					continue
				}

				a.Decorate(module)
				writeModule(out, module, control.Targets)
			}

			writeDiagnostics(cmd.ErrOrStderr(), r.diags.All())

			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "dotted member path to render instead of whole packages")

	return cmd
}

var headingColor = color.New(color.FgCyan, color.Bold)

func writeDoc(w io.Writer, name, doc string) {
	headingColor.Fprintln(w, name)
	fmt.Fprintln(w, strings.Repeat("=", len(name)))

	if doc != "" {
		fmt.Fprintln(w, doc)
	}

	fmt.Fprintln(w)
}

// writeModule prints the module docstring and those of the members the
// targets selected for decoration.
func writeModule(w io.Writer, module *introspect.Module, targets introspect.Targets) {
	writeDoc(w, module.Name, module.Doc)
	writeMembers(w, module.Members, targets)
}

func writeMembers(w io.Writer, members []introspect.Member, targets introspect.Targets) {
	for _, m := range members {
		switch value := m.Value.(type) {
		case *introspect.Class:
			if !targets.Has(introspect.TargetClass) {
				continue
			}

			writeDoc(w, value.FullName(), value.Doc)
			writeMembers(w, value.Members, targets)
		case *introspect.Function:
			if !targets.Has(introspect.TargetFunction) {
				continue
			}

			writeDoc(w, value.FullName(), value.Doc)
		}
	}
}
