package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dynadoc/internal/config"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			err = os.WriteFile(output, append(data, '\n'), 0o644)
			if err != nil {
				return fmt.Errorf("failed to write schema %s: %w", output, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the schema to a file")

	return cmd
}
