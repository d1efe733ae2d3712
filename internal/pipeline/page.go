package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// Sentinel errors for page assembly.
var (
	ErrInvalidTemplate = errors.New("invalid page template")
	ErrPageRender      = errors.New("page template rendering failed")
)

// bodyAction matches the {{.Body}} action, with optional trim markers.
var bodyAction = regexp.MustCompile(`\{\{-?\s*\.Body\s*-?\}\}`)

// PageData is the data passed to a page template.
type PageData struct {
	Title       string
	Lang        string
	Dir         string
	CSS         template.CSS
	Body        template.HTML
	SourceURL   string
	SourceLabel string
	MathJax     bool
	Stylesheets []string
}

// PageRenderer assembles a full HTML document around a fragment.
type PageRenderer interface {
	RenderPage(ctx context.Context, data PageData) (string, error)
}

// PageTemplate is a parsed html/template page. Safe for concurrent use.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate parses text as a page template named name.
// The template must reference {{.Body}} exactly where the fragment goes.
func NewPageTemplate(name, text string) (*PageTemplate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s: empty template", ErrInvalidTemplate, name)
	}
	if !bodyAction.MatchString(text) {
		return nil, fmt.Errorf("%w: %s: missing {{.Body}}", ErrInvalidTemplate, name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	return &PageTemplate{tmpl: tmpl}, nil
}

// RenderPage executes the template. CSS is escaped so it cannot close its
// <style> element.
func (p *PageTemplate) RenderPage(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data.CSS = template.CSS(sanitizeCSS(string(data.CSS))) // #nosec G203 -- CSS comes from trusted assets

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ PageRenderer = (*PageTemplate)(nil)
