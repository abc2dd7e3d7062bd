// Command pythia is the language frontend tool: it tokenizes, parses,
// formats and checks source files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
