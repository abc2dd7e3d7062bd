package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and dump the syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, filename, err := readSource(args[0])
		if err != nil {
			return err
		}
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		mod, err := parser.ParseWithOptions(source, filename, opts)
		if err != nil {
			return fail(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), ast.Dump(mod))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
