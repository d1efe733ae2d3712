package config

// Notes:
// - LoadConfig tests write real files under t.TempDir()
// - Name resolution tests use t.Chdir and t.Setenv, so they are not parallel
// - The permission test is skipped when running as root, where chmod 0000
//   does not prevent reading

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.Path != DefaultInputPath {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, DefaultInputPath)
	}
	if cfg.Output.Path != DefaultOutputPath {
		t.Errorf("Output.Path = %q, want %q", cfg.Output.Path, DefaultOutputPath)
	}
	if cfg.Output.PDF {
		t.Error("Output.PDF = true, want false")
	}
	if cfg.Markdown.Extensions != nil {
		t.Errorf("Markdown.Extensions = %v, want nil", cfg.Markdown.Extensions)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateFieldLength() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults valid",
			modify: func(c *Config) {},
		},
		{
			name: "rtl and ltr and auto valid",
			modify: func(c *Config) {
				c.Page.Dir = "LTR"
			},
		},
		{
			name: "known extensions valid",
			modify: func(c *Config) {
				c.Markdown.Extensions = []string{"tables", "extra", "attr_list", "highlight"}
			},
		},
		{
			name: "invalid dir",
			modify: func(c *Config) {
				c.Page.Dir = "up"
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "unknown extension",
			modify: func(c *Config) {
				c.Markdown.Extensions = []string{"tables", "wikilinks"}
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "title too long",
			modify: func(c *Config) {
				c.Page.Title = strings.Repeat("a", MaxTitleLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "lang too long",
			modify: func(c *Config) {
				c.Page.Lang = strings.Repeat("a", MaxLangLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "source url too long",
			modify: func(c *Config) {
				c.Page.Source = "https://" + strings.Repeat("a", MaxURLLength)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "stylesheet too long",
			modify: func(c *Config) {
				c.Page.Stylesheets = []string{"ok.css", strings.Repeat("a", MaxURLLength+1)}
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "output path too long",
			modify: func(c *Config) {
				c.Output.Path = strings.Repeat("a", MaxPathLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File Paths
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("full config loads", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "full.yaml", `input:
  path: docs/report.md
output:
  path: site/index.html
  pdf: true
page:
  title: "تشخیص اوتیسم"
  lang: fa
  dir: rtl
  source: https://github.com/example/report
  sourceLabel: Source
  mathjax: false
  stylesheets:
    - https://cdn.example.com/a.css
markdown:
  extensions: [tables, extra, attr_list, highlight]
  frontMatter: false
  sanitize: true
assets:
  basePath: ./assets
  style: minimal
  template: default
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Path != "docs/report.md" {
			t.Errorf("Input.Path = %q", cfg.Input.Path)
		}
		if cfg.Output.Path != "site/index.html" || !cfg.Output.PDF {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Page.Title != "تشخیص اوتیسم" || cfg.Page.Lang != "fa" {
			t.Errorf("Page = %+v", cfg.Page)
		}
		if cfg.Page.MathJax == nil || *cfg.Page.MathJax {
			t.Errorf("Page.MathJax = %v, want false", cfg.Page.MathJax)
		}
		if len(cfg.Page.Stylesheets) != 1 {
			t.Errorf("Page.Stylesheets = %v", cfg.Page.Stylesheets)
		}
		if len(cfg.Markdown.Extensions) != 4 {
			t.Errorf("Markdown.Extensions = %v", cfg.Markdown.Extensions)
		}
		if cfg.Markdown.FrontMatter == nil || *cfg.Markdown.FrontMatter {
			t.Errorf("Markdown.FrontMatter = %v, want false", cfg.Markdown.FrontMatter)
		}
		if !cfg.Markdown.Sanitize {
			t.Error("Markdown.Sanitize = false, want true")
		}
		if cfg.Assets.Style != "minimal" {
			t.Errorf("Assets.Style = %q", cfg.Assets.Style)
		}
	})

	t.Run("missing paths get defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "partial.yaml", "page:\n  title: Report\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Path != DefaultInputPath || cfg.Output.Path != DefaultOutputPath {
			t.Errorf("paths = %q, %q; want defaults", cfg.Input.Path, cfg.Output.Path)
		}
		if cfg.Page.MathJax != nil {
			t.Errorf("Page.MathJax = %v, want nil", *cfg.Page.MathJax)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "page: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "page:\n  title: x\n  colour: red\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid dir returns ErrInvalidField", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "dir.yaml", "page:\n  dir: sideways\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read files regardless of mode")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "page:\n  title: x\n")
		if err := os.Chmod(path, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(path, 0600)

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_NameResolution - Search Locations
// ---------------------------------------------------------------------------

func TestLoadConfig_NameResolution(t *testing.T) {
	t.Run("yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "md2html.yaml", "page:\n  title: local\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("md2html")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Title != "local" {
			t.Errorf("Page.Title = %q, want %q", cfg.Page.Title, "local")
		}
	})

	t.Run("yml extension", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "report.yml", "page:\n  title: yml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("report")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Title != "yml" {
			t.Errorf("Page.Title = %q, want %q", cfg.Page.Title, "yml")
		}
	})

	t.Run("user config directory", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on Linux")
		}
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		if err := os.MkdirAll(filepath.Join(home, searchDirName), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		writeConfig(t, filepath.Join(home, searchDirName), "shared.yaml", "page:\n  title: shared\n")
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Title != "shared" {
			t.Errorf("Page.Title = %q, want %q", cfg.Page.Title, "shared")
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("report")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the current directory entries", paths)
	}
	if paths[0] != "report.yaml" || paths[1] != "report.yml" {
		t.Errorf("SearchPaths() starts with %v, want report.yaml then report.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(filepath.ToSlash(p), "/"+searchDirName+"/") {
			t.Errorf("path %q should live under %s", p, searchDirName)
		}
	}
}
