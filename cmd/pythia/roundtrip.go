package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/unparse"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>...",
	Short: "Verify that parse-unparse-parse preserves each file's tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		bad := 0
		for _, path := range args {
			source, filename, err := readSource(path)
			if err != nil {
				return err
			}
			original, err := parser.ParseWithOptions(source, filename, opts)
			if err != nil {
				return fail(err)
			}
			rendered := unparse.UnparseWithStyle(original, cfg.Style)
			reparsed, err := parser.ParseWithOptions(rendered, filename, opts)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: rendered output does not reparse: %v\n", path, err)
				bad++
				continue
			}
			if !ast.Equal(original, reparsed) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: tree changed across round trip\n", path)
				bad++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d files failed the round trip", bad, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}
