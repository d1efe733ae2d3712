package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page metadata flags.
type pageFlags struct {
	title     string
	lang      string
	dir       string
	source    string
	noSource  bool
	noMathJax bool
}

// markdownFlags holds renderer flags.
type markdownFlags struct {
	extensions    []string
	extSet        bool // --ext given, even as an empty list
	sanitize      bool
	noFrontMatter bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name, path or inline CSS
	template  string // Name, path or inline template
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	page      pageFlags
	markdown  markdownFlags
	assets    assetFlags
	pdf       bool
	keepGoing bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page metadata flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.title, "title", "", "page title")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute")
	fs.StringVar(&f.dir, "dir", "", "text direction: rtl, ltr, auto")
	fs.StringVar(&f.source, "source", "", "URL of the source button")
	fs.BoolVar(&f.noSource, "no-source", false, "omit the source button")
	fs.BoolVar(&f.noMathJax, "no-mathjax", false, "do not load MathJax")
}

// addMarkdownFlags adds renderer flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringSliceVar(&f.extensions, "ext", nil, "markdown extensions (repeatable or comma list)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize rendered HTML")
	fs.BoolVar(&f.noFrontMatter, "no-front-matter", false, "keep YAML front matter as content")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF snapshot timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF next to each HTML file")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "report failures but exit 0")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addMarkdownFlags(fs, &f.markdown)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.markdown.extSet = fs.Changed("ext")

	return f, fs.Args(), nil
}
