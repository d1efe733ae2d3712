package md2html

import (
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration

	// Style and template inputs: a name, a file path or inline content.
	styleInput    string
	styleSet      bool
	templateInput string
	templateSet   *TemplateSet
	resolvedStyle string

	// nil keeps the pipeline defaults.
	extensions []string
	assetPath  string
	page       *Page

	sanitize    bool
	frontMatter bool
}

// defaultTimeout bounds a single conversion, PDF snapshot included.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the page CSS. The value is a style name resolved by the
// asset loader, a file path (contains / or \), or CSS content (contains {).
// An empty value disables embedded CSS.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
		c.cfg.resolvedStyle = ""
		c.cfg.styleSet = true
	}
}

// WithTemplate sets the page template. The value is a template set name, a
// file path (contains / or \), or template content (contains {{).
func WithTemplate(template string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = template
		c.cfg.templateSet = nil
	}
}

// WithTemplateSet uses ts directly, bypassing the asset loader.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
		c.cfg.templateInput = ""
	}
}

// WithExtensions replaces the Markdown extension list. Calling it with no
// names renders plain CommonMark.
func WithExtensions(names ...string) Option {
	return func(c *Converter) {
		c.cfg.extensions = append([]string{}, names...)
	}
}

// WithAssetPath loads styles and templates from path, falling back to the
// embedded assets for names not found there.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithPage replaces the default page metadata.
func WithPage(p Page) Option {
	return func(c *Converter) {
		c.cfg.page = &p
	}
}

// WithSanitize scrubs the rendered fragment with a UGC policy before it is
// placed in the page. Raw HTML otherwise passes through.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithFrontMatter controls whether a leading YAML block is read as page
// metadata. Enabled by default.
func WithFrontMatter(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.frontMatter = enabled
	}
}
