package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if flags.common.verbose {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positionalArgs, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	files, err := discoverFiles(cfg.Input.Path, cfg.Output.Path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, cfg.Input.Path)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(md2html.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := md2html.NewConverterPool(poolSize, buildOptions(cfg, timeout)...)
	defer pool.Close()

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, cfg.Output.PDF, env.Now)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// loadConfig loads the named config, the flag taking precedence over
// MD2HTML_CONFIG. Without either, the defaults apply.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, args []string, cfg *config.Config) {
	// I/O
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.pdf {
		cfg.Output.PDF = true
	}

	// Page
	if flags.page.title != "" {
		cfg.Page.Title = flags.page.title
	}
	if flags.page.lang != "" {
		cfg.Page.Lang = flags.page.lang
	}
	if flags.page.dir != "" {
		cfg.Page.Dir = flags.page.dir
	}
	if flags.page.source != "" {
		cfg.Page.Source = flags.page.source
		cfg.Page.NoSource = false
	}
	if flags.page.noSource {
		cfg.Page.NoSource = true
	}
	if flags.page.noMathJax {
		off := false
		cfg.Page.MathJax = &off
	}

	// Markdown
	if flags.markdown.extSet {
		cfg.Markdown.Extensions = append([]string{}, flags.markdown.extensions...)
	}
	if flags.markdown.sanitize {
		cfg.Markdown.Sanitize = true
	}
	if flags.markdown.noFrontMatter {
		off := false
		cfg.Markdown.FrontMatter = &off
	}

	// Assets
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.noStyle {
		cfg.Assets.Style = ""
		cfg.Assets.NoStyle = true
	}
}

// buildPage applies the config's page overrides to the default page.
func buildPage(pc config.PageConfig) md2html.Page {
	page := md2html.DefaultPage()
	if pc.Title != "" {
		page.Title = pc.Title
	}
	if pc.Lang != "" {
		page.Lang = pc.Lang
	}
	if pc.Dir != "" {
		page.Dir = pc.Dir
	}
	if pc.Source != "" {
		page.SourceURL = pc.Source
	}
	if pc.SourceLabel != "" {
		page.SourceLabel = pc.SourceLabel
	}
	if pc.NoSource {
		page.SourceURL = ""
	}
	if pc.MathJax != nil {
		page.MathJax = *pc.MathJax
	}
	if pc.Stylesheets != nil {
		page.Stylesheets = append([]string{}, pc.Stylesheets...)
	}
	return page
}

// buildOptions translates the merged config into converter options.
// A zero timeout keeps the library default.
func buildOptions(cfg *config.Config, timeout time.Duration) []md2html.Option {
	opts := []md2html.Option{
		md2html.WithPage(buildPage(cfg.Page)),
		md2html.WithSanitize(cfg.Markdown.Sanitize),
		md2html.WithPDF(cfg.Output.PDF),
	}

	if cfg.Markdown.Extensions != nil {
		opts = append(opts, md2html.WithExtensions(cfg.Markdown.Extensions...))
	}
	if cfg.Markdown.FrontMatter != nil {
		opts = append(opts, md2html.WithFrontMatter(*cfg.Markdown.FrontMatter))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	switch {
	case cfg.Assets.NoStyle:
		opts = append(opts, md2html.WithStyle(""))
	case cfg.Assets.Style != "":
		opts = append(opts, md2html.WithStyle(cfg.Assets.Style))
	}
	if cfg.Assets.Template != "" {
		opts = append(opts, md2html.WithTemplate(cfg.Assets.Template))
	}

	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}

	return opts
}

// resolveTimeoutWithEnv determines the PDF snapshot timeout.
// Priority: flag > MD2HTML_TIMEOUT > library default (returned as 0).
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use format like 30s, 2m, 1m30s)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	return envValue, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2html.MaxPoolSize)
	}
	return nil
}
