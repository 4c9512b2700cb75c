// Package main provides the CLI entrypoint for dynadoc.
//
// dynadoc generates Sphinx docstrings for Go packages:
//   - Loads packages with go/packages and converts their types to annotations
//   - Reduces annotations and their doc/dynadoc struct tags
//   - Classifies parameters, fields, results and errors
//   - Renders Sphinx field lists and prints or checks them
package main

import (
	"fmt"
	"os"

	"dynadoc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
