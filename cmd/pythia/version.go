package main

import (
	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/cli"
)

var flagVersionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.PrintVersion(cmd.OutOrStdout(), "pythia", flagVersionJSON)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagVersionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)
}
