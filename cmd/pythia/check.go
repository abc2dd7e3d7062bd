package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pythia-lang/pythia/internal/cli"
	"github.com/pythia-lang/pythia/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse files concurrently and report all diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		failures, err := checkFiles(args, opts)
		if err != nil {
			return err
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d files failed to parse", failures, len(args))
		}
		logger.Info("all files parsed", "count", len(args))
		return nil
	},
}

// checkFiles parses every file on a bounded worker group and renders
// one diagnostic per failing file. I/O or usage errors abort the run;
// syntax errors are counted and reported.
func checkFiles(paths []string, opts parser.Options) (int, error) {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	failures := 0

	for _, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := parser.ParseWithOptions(string(data), path, opts); err != nil {
				mu.Lock()
				failures++
				fmt.Fprintln(os.Stderr, cli.RenderDiagnostic(err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return failures, err
	}
	return failures, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
