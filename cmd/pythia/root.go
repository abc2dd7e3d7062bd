package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/cli"
	"github.com/pythia-lang/pythia/internal/config"
	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/pyver"
)

var (
	flagConfig  string
	flagVerbose bool
	flagLogJSON string
	flagLang    string

	cfg       config.Config
	logger    *slog.Logger
	logCloser func() error
)

var rootCmd = &cobra.Command{
	Use:           "pythia",
	Short:         "Tokenize, parse, format and check source files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLang != "" {
			cfg.LanguageVersion = flagLang
		}
		logger, logCloser, err = cli.NewLogger(flagVerbose, flagLogJSON)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", ".pythia.toml", "path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogJSON, "log-json", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "target language version, e.g. 3.10")
}

// parserOptions resolves the configured language version into parse
// options.
func parserOptions() (parser.Options, error) {
	if cfg.LanguageVersion == "" {
		return parser.Options{}, nil
	}
	v, err := pyver.ParseVersion(cfg.LanguageVersion)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Version: v}, nil
}

// readSource reads a file argument, with "-" meaning stdin.
func readSource(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

// fail renders a diagnostic on stderr and returns a silent error so
// cobra exits nonzero without reprinting it.
func fail(err error) error {
	fmt.Fprintln(os.Stderr, cli.RenderDiagnostic(err))
	return fmt.Errorf("exiting due to error")
}
