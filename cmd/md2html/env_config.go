package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix marks the environment variables read by md2html.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	Style      string        // MD2HTML_STYLE: CSS style name or path
	Template   string        // MD2HTML_TEMPLATE: template set name or path
	Timeout    time.Duration // MD2HTML_TIMEOUT: PDF snapshot timeout
	Workers    int           // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":   true,
	"MD2HTML_STYLE":    true,
	"MD2HTML_TEMPLATE": true,
	"MD2HTML_TIMEOUT":  true,
	"MD2HTML_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable or non-positive durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		Style:      os.Getenv("MD2HTML_STYLE"),
		Template:   os.Getenv("MD2HTML_TEMPLATE"),
	}

	if timeout := os.Getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables,
// in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Assets.Style == "" {
		cfg.Assets.Style = env.Style
	}
	if env.Template != "" && cfg.Assets.Template == "" {
		cfg.Assets.Template = env.Template
	}
}
