// Package config loads the site-build settings notebook rendering
// consumes: where notebook files live, where template overrides are
// searched, and which highlighting style to apply.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-nb2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// DefaultNotebookDir is the subdirectory of the content root searched
// for notebook files when the config does not name one.
const DefaultNotebookDir = "notebooks"

// DefaultHighlightStyle is the chroma style used when the config does
// not name one.
const DefaultHighlightStyle = "github"

// Config holds all configuration for notebook rendering.
type Config struct {
	Notebooks NotebooksConfig `yaml:"notebooks"`
	Plugins   PluginsConfig   `yaml:"plugins"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// NotebooksConfig locates notebook files under the content root.
type NotebooksConfig struct {
	Dir string `yaml:"dir"` // Subdirectory of the content root (default "notebooks")
}

// PluginsConfig lists directories searched for template overrides.
type PluginsConfig struct {
	Paths []string `yaml:"paths"` // Searched in order; empty = embedded templates only
}

// HighlightConfig selects the code-highlighting style.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name (default "github")
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Notebooks: NotebooksConfig{Dir: DefaultNotebookDir},
		Highlight: HighlightConfig{Style: DefaultHighlightStyle},
	}
}

// Load reads configuration from a YAML file, applying defaults for
// absent fields. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Notebooks.Dir == "" {
		cfg.Notebooks.Dir = DefaultNotebookDir
	}
	if cfg.Highlight.Style == "" {
		cfg.Highlight.Style = DefaultHighlightStyle
	}

	return cfg, nil
}

// NotebookDir returns the notebook subdirectory name.
func (c *Config) NotebookDir() string { return c.Notebooks.Dir }

// PluginPaths returns the template-override search directories.
func (c *Config) PluginPaths() []string { return c.Plugins.Paths }

// HighlightStyle returns the chroma style name.
func (c *Config) HighlightStyle() string { return c.Highlight.Style }
