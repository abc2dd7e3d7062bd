package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/unparse"
)

var flagFmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Reformat source files through the parser and generator",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		for _, path := range args {
			source, filename, err := readSource(path)
			if err != nil {
				return err
			}
			mod, err := parser.ParseWithOptions(source, filename, opts)
			if err != nil {
				return fail(err)
			}
			formatted := unparse.UnparseWithStyle(mod, cfg.Style)
			if flagFmtWrite && path != "-" {
				if formatted == source {
					continue
				}
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("rewrote", "file", path)
				continue
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&flagFmtWrite, "write", "w", false, "rewrite files in place instead of printing")
	rootCmd.AddCommand(fmtCmd)
}
