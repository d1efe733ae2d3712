package md2html

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// filePermissions is used for HTML and PDF outputs, which are meant to be published.
const filePermissions = 0o644 // rw-r--r--

// Input contains per-conversion parameters for Convert.
type Input struct {
	Markdown  string // Markdown source, optionally starting with front matter
	Name      string // Source name used in error messages (optional)
	SourceDir string // Base directory for relative images in the PDF snapshot
	Page      *Page  // Page metadata (optional, nil = converter page)
	PDF       bool   // Also print the page to PDF
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML     []byte // Complete page
	Fragment string // Rendered Markdown, as placed inside the container
	Page     Page   // Page metadata after front matter was applied
	PDF      []byte // PDF snapshot, nil unless requested
}

// Converter turns Markdown into a standalone HTML page.
// Create with NewConverter(), call Convert() or ConvertFile(), and Close() when done.
// A Converter may be shared by goroutines; the PDF browser is launched lazily.
type Converter struct {
	cfg               converterConfig
	publicAssetLoader AssetLoader
	loader            AssetLoader
	renderer          *pipeline.GoldmarkRenderer
	sanitizer         pipeline.Sanitizer
	pageTemplate      pipeline.PageRenderer
	pdfConverter      pdfConverter
	pdf               bool
}

// NewConverter creates a Converter with default configuration: tables,
// extra and attr_list extensions, the embedded default style and template,
// and the default page.
// Returns error if assets cannot be loaded, the template is invalid, or an
// extension name is unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			frontMatter: true,
		},
		loader: &embeddedAdapter{loader: assets.NewEmbeddedLoader()},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}
	if c.publicAssetLoader != nil {
		c.loader = c.publicAssetLoader
	}

	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}

	renderer, err := pipeline.NewGoldmarkRenderer(pipeline.RendererOptions{
		Extensions: c.cfg.extensions,
	})
	if err != nil {
		return nil, err
	}
	c.renderer = renderer

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pageTemplate == nil {
		ts, err := c.resolveTemplate()
		if err != nil {
			return nil, err
		}
		c.pageTemplate, err = pipeline.NewPageTemplate(ts.Name, ts.Page)
		if err != nil {
			return nil, err
		}
	}

	if c.cfg.sanitize {
		c.sanitizer = pipeline.NewUGCSanitizer()
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// WithPDF makes ConvertFile also write a PDF snapshot next to the HTML
// output, with the extension replaced by .pdf.
func WithPDF(enabled bool) Option {
	return func(c *Converter) {
		c.pdf = enabled
	}
}

// Convert renders input into a full HTML page without touching the filesystem.
// Errors are *ConversionError values tagged with the failing stage.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	page := c.basePage()
	if input.Page != nil {
		if err := input.Page.Validate(); err != nil {
			return nil, err
		}
		page = clonePage(*input.Page)
	}

	source, err := pipeline.DecodeSource([]byte(input.Markdown))
	if err != nil {
		return nil, stageError(StageRead, input.Name, err)
	}

	if c.cfg.frontMatter {
		var fm pipeline.FrontMatter
		fm, source = pipeline.ParseFrontMatter(source)
		if !fm.IsZero() {
			page = page.withFrontMatter(fm)
			if err := page.Validate(); err != nil {
				return nil, stageError(StageRender, input.Name, err)
			}
		}
	}

	fragment, err := c.renderer.Render(ctx, source)
	if err != nil {
		return nil, stageError(StageRender, input.Name, err)
	}

	if c.sanitizer != nil {
		fragment = c.sanitizer.Sanitize(fragment)
	}

	htmlContent, err := c.pageTemplate.RenderPage(ctx, page.pageData(c.css(), fragment))
	if err != nil {
		return nil, stageError(StageRender, input.Name, err)
	}

	res := &ConvertResult{
		HTML:     []byte(htmlContent),
		Fragment: fragment,
		Page:     page,
	}

	if !input.PDF {
		return res, nil
	}

	snapshot, err := pipeline.ResolveLocalRefs(htmlContent, input.SourceDir)
	if err != nil {
		return nil, stageError(StagePDF, input.Name, err)
	}
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, snapshot)
	if err != nil {
		return nil, stageError(StagePDF, input.Name, err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// ConvertFile reads inputPath, renders it and writes the page to outputPath,
// replacing any existing file. Nothing is written when reading or rendering
// fails. With WithPDF, the snapshot goes to outputPath with a .pdf extension.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) error {
	_, err := c.convertFile(ctx, inputPath, outputPath)
	return err
}

// convertFile is ConvertFile returning the PDF path when one was written.
func (c *Converter) convertFile(ctx context.Context, inputPath, outputPath string) (pdfPath string, err error) {
	raw, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", stageError(StageRead, inputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return "", stageError(StageRender, inputPath, err)
	}

	res, err := c.Convert(ctx, Input{
		Markdown:  string(raw),
		Name:      inputPath,
		SourceDir: filepath.Dir(inputPath),
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, res.HTML, filePermissions); err != nil {
		return "", stageError(StageWrite, outputPath, err)
	}

	if !c.pdf {
		return "", nil
	}

	snapshot, err := pipeline.ResolveLocalRefs(string(res.HTML), filepath.Dir(inputPath))
	if err != nil {
		return "", stageError(StagePDF, inputPath, err)
	}
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, snapshot)
	if err != nil {
		return "", stageError(StagePDF, inputPath, err)
	}

	pdfPath = fileutil.ReplaceExt(outputPath, ".pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, filePermissions); err != nil {
		return "", stageError(StageWrite, pdfPath, err)
	}
	return pdfPath, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// Extensions returns the Markdown extensions in use.
func (c *Converter) Extensions() []string {
	return c.renderer.Extensions()
}

// basePage returns a copy of the configured page.
func (c *Converter) basePage() Page {
	if c.cfg.page != nil {
		return clonePage(*c.cfg.page)
	}
	return DefaultPage()
}

// css returns the page CSS: the resolved style followed by extension CSS.
func (c *Converter) css() string {
	extra := c.renderer.ExtraCSS()
	switch {
	case extra == "":
		return c.cfg.resolvedStyle
	case c.cfg.resolvedStyle == "":
		return extra
	default:
		return c.cfg.resolvedStyle + "\n" + extra
	}
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter() after options are applied and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if !c.cfg.styleSet {
		input = DefaultStyle
	}
	if input == "" {
		return nil // explicitly disabled
	}

	// CSS content? (contains {)
	if strings.Contains(input, "{") {
		c.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// Style name -> use asset loader
	css, err := c.loader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveTemplate resolves the template input (set, name, path, or content).
func (c *Converter) resolveTemplate() (*TemplateSet, error) {
	if c.cfg.templateSet != nil {
		return c.cfg.templateSet, nil
	}

	input := c.cfg.templateInput
	if input == "" {
		input = DefaultTemplateSet
	}

	// Template content? (contains {{)
	if strings.Contains(input, "{{") {
		return NewTemplateSet("inline", input), nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: loading template file %q: %v", ErrTemplateSetNotFound, input, err)
		}
		return NewTemplateSet(input, string(content)), nil
	}

	ts, err := c.loader.LoadTemplateSet(input)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", input, err)
	}
	return ts, nil
}

func clonePage(p Page) Page {
	p.Stylesheets = append([]string(nil), p.Stylesheets...)
	return p
}
