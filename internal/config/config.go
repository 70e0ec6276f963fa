// Package config locates and decodes arbor.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"arbor/internal/lang"
)

// FileName is the configuration file arbor looks for.
const FileName = "arbor.toml"

// Config is the decoded configuration.
type Config struct {
	Format    FormatConfig     `toml:"format"`
	Languages []LanguageConfig `toml:"language"`

	// Path is where the configuration was found; empty when defaults
	// are in effect.
	Path string `toml:"-"`
}

// FormatConfig holds output shape options.
type FormatConfig struct {
	Indent int  `toml:"indent"`
	Tabs   bool `toml:"tabs"`
}

// LanguageConfig declares or overrides one language.
type LanguageConfig struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
	Grammar    string   `toml:"grammar"`
	Revision   string   `toml:"revision"`
	Symbol     string   `toml:"symbol"`
	Query      string   `toml:"query"`
}

// Default returns the configuration used when no arbor.toml exists.
func Default() *Config {
	return &Config{Format: FormatConfig{Indent: 2}}
}

// Find walks upward from startDir looking for arbor.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and decodes the configuration, falling back to the
// defaults when no file exists.
func Load(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile decodes a specific configuration file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Registry builds the language registry: built-in languages first, then
// the configured entries so user settings shadow the defaults.
func (c *Config) Registry() *lang.Registry {
	languages := lang.Builtin()
	for _, lc := range c.Languages {
		languages = append(languages, &lang.Language{
			Name:       lc.Name,
			Extensions: lc.Extensions,
			Grammar: lang.Grammar{
				Repository: lc.Grammar,
				Revision:   lc.Revision,
				Symbol:     lc.Symbol,
			},
			QueryFile: lc.Query,
		})
	}
	return lang.NewRegistry(languages)
}
