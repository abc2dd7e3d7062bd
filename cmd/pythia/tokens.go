package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, filename, err := readSource(args[0])
		if err != nil {
			return err
		}
		tokens, err := lexer.Tokenize(source, filename)
		if err != nil {
			return fail(err)
		}
		for _, tok := range tokens {
			fmt.Fprintln(cmd.OutOrStdout(), tok.String())
		}
		logger.Debug("tokenized", "file", filename, "tokens", len(tokens))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
