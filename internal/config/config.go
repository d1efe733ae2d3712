package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxURLLength   = 2048 // Browser limit
	MaxTitleLength = 200  // Document title
	MaxLangLength  = 35   // BCP 47 tag
	MaxLabelLength = 100  // Source button label
	MaxNameLength  = 100  // Style or template set reference
)

// Default input and output paths, relative to the working directory.
const (
	DefaultInputPath  = "report.md"
	DefaultOutputPath = "index.html"
)

// searchDirName is the directory under the user config dir holding named configs.
const searchDirName = "go-md2html"

// Config holds all configuration for a conversion run.
// Empty page fields keep the library defaults.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines the input source.
type InputConfig struct {
	Path string `yaml:"path"` // File or directory (default: report.md)
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"` // File or directory (default: index.html)
	PDF  bool   `yaml:"pdf"`  // Also print the page to <output>.pdf
}

// PageConfig overrides page metadata.
type PageConfig struct {
	Title       string   `yaml:"title"`
	Lang        string   `yaml:"lang"`
	Dir         string   `yaml:"dir"` // "rtl", "ltr" or "auto"
	Source      string   `yaml:"source"`
	SourceLabel string   `yaml:"sourceLabel"`
	NoSource    bool     `yaml:"noSource"` // Drop the source button entirely
	MathJax     *bool    `yaml:"mathjax"`  // nil keeps the default (enabled)
	Stylesheets []string `yaml:"stylesheets"`
}

// MarkdownConfig selects renderer behavior.
type MarkdownConfig struct {
	Extensions  []string `yaml:"extensions"`  // nil keeps tables, extra, attr_list
	FrontMatter *bool    `yaml:"frontMatter"` // nil keeps the default (enabled)
	Sanitize    bool     `yaml:"sanitize"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style"`    // Name, file path or inline CSS
	NoStyle  bool   `yaml:"noStyle"`  // Embed no CSS at all
	Template string `yaml:"template"` // Name, file path or inline template
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"page.source", c.Page.Source, MaxURLLength},
		{"page.sourceLabel", c.Page.SourceLabel, MaxLabelLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxPathLength},
		{"assets.template", c.Assets.Template, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for i, href := range c.Page.Stylesheets {
		if err := validateFieldLength(fmt.Sprintf("page.stylesheets[%d]", i), href, MaxURLLength); err != nil {
			return err
		}
	}

	if c.Page.Dir != "" {
		switch strings.ToLower(c.Page.Dir) {
		case "rtl", "ltr", "auto":
			// valid
		default:
			return fmt.Errorf("%w: page.dir %q (must be rtl, ltr, or auto)", ErrInvalidField, c.Page.Dir)
		}
	}

	if _, err := pipeline.NormalizeExtensions(c.Markdown.Extensions); err != nil {
		return fmt.Errorf("%w: markdown.extensions: %w", ErrInvalidField, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// report.md rendered to index.html with embedded assets.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Path: DefaultInputPath},
		Output: OutputConfig{Path: DefaultOutputPath},
	}
}

// ApplyDefaults fills empty input and output paths.
func (c *Config) ApplyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// .yaml then .yml, in the current directory then <user config dir>/go-md2html/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"."}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, searchDirName))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, candidate := range tried {
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
