// Package cli implements the dynadoc command line.
package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// EnvPrefix prefixes the environment variables overriding flags.
const EnvPrefix = "DYNADOC"

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "dynadoc",
		Short: "Generate Sphinx docstrings from Go type annotations",
		Long: color.CyanString(`dynadoc - docstrings from annotations

dynadoc loads Go packages, reduces the types and struct tags of their
declarations and renders Sphinx field lists describing arguments,
attributes, return values and errors.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "configuration file (YAML)")
	flags.StringP("dir", "C", "", "directory packages are resolved from")
	flags.String("style", "", "annotation style: legible or pep8")
	flags.String("notify", "", "lowest notification level reported: admonition, error or alert")
	flags.StringSlice("targets", nil, "member kinds documented recursively: class, function, module, all, none")
	flags.Bool("local-names", false, "leave names of the documented package unqualified")
	flags.Bool("no-preserve", false, "drop existing docstrings")
	flags.BoolP("verbose", "v", false, "log notifications and load timings")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewRenderCommand(v))
	rootCmd.AddCommand(NewCheckCommand(v))
	rootCmd.AddCommand(NewDumpCommand(v))
	rootCmd.AddCommand(NewSchemaCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}
