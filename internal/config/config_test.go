package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pythia.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Style.IndentWidth != 4 {
		t.Errorf("indent_width = %d, want 4", cfg.Style.IndentWidth)
	}
	if cfg.Style.Quote != "single" {
		t.Errorf("quote = %q, want single", cfg.Style.Quote)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Style.IndentWidth != 4 {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
language_version = "3.10"

[style]
indent_width = 2
quote = "double"
max_blank_lines = 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LanguageVersion != "3.10" {
		t.Errorf("language_version = %q, want 3.10", cfg.LanguageVersion)
	}
	if cfg.Style.IndentWidth != 2 || cfg.Style.Quote != "double" || cfg.Style.MaxBlankLines != 1 {
		t.Errorf("style = %+v", cfg.Style)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[style]\nquote = \"double\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Style.IndentWidth != 4 {
		t.Errorf("indent_width = %d, want default 4", cfg.Style.IndentWidth)
	}
	if cfg.Style.Quote != "double" {
		t.Errorf("quote = %q, want double", cfg.Style.Quote)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero indent", func(c *Config) { c.Style.IndentWidth = 0 }},
		{"huge indent", func(c *Config) { c.Style.IndentWidth = 17 }},
		{"bad quote", func(c *Config) { c.Style.Quote = "backtick" }},
		{"negative blank cap", func(c *Config) { c.Style.MaxBlankLines = -1 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted %+v", tt.name, cfg.Style)
		}
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeConfig(t, "[style]\nindent_width = 99\n")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted out-of-range indent_width")
	}
}
