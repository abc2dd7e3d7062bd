// Package config loads tool configuration from a TOML file and
// supplies the defaults used when no file is present.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Style controls how the generator renders source text.
type Style struct {
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int `toml:"indent_width"`
	// Quote is the preferred string quote: "single" or "double".
	Quote string `toml:"quote"`
	// MaxBlankLines caps consecutive blank lines between top-level
	// statements. Zero keeps them all.
	MaxBlankLines int `toml:"max_blank_lines"`
}

// Config is the full on-disk configuration.
type Config struct {
	// LanguageVersion selects the grammar version, e.g. "3.10".
	LanguageVersion string `toml:"language_version"`
	Style           Style  `toml:"style"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Style: Style{
			IndentWidth: 4,
			Quote:       "single",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the generator cannot honor.
func (c *Config) Validate() error {
	if c.Style.IndentWidth < 1 || c.Style.IndentWidth > 16 {
		return fmt.Errorf("indent_width must be between 1 and 16, got %d", c.Style.IndentWidth)
	}
	switch c.Style.Quote {
	case "single", "double":
	default:
		return fmt.Errorf("quote must be \"single\" or \"double\", got %q", c.Style.Quote)
	}
	if c.Style.MaxBlankLines < 0 {
		return fmt.Errorf("max_blank_lines must not be negative, got %d", c.Style.MaxBlankLines)
	}
	return nil
}
