package md2html

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Text direction constants.
const (
	DirRTL  = "rtl"
	DirLTR  = "ltr"
	DirAuto = "auto"
)

// Page defaults. They reproduce the report page the converter was first
// written for.
const (
	DefaultTitle       = "تشخیص اوتیسم براساس ویژگی‌های رفتاری و چهره‌ای با هوش‌مصنوعی"
	DefaultLang        = "en"
	DefaultDir         = DirRTL
	DefaultSourceURL   = "https://github.com/alie8096/Autism-Diagnosis"
	DefaultSourceLabel = "مشاهده سورس پروژه"
)

// DefaultStylesheets are linked from every page unless replaced.
var DefaultStylesheets = []string{
	"https://cdnjs.cloudflare.com/ajax/libs/reveal.js/4.3.1/reveal.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/reveal.js/4.3.1/theme/white.min.css",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0-beta3/css/all.min.css",
}

// Page holds the metadata placed around the rendered fragment.
type Page struct {
	Title       string
	Lang        string
	Dir         string   // "rtl", "ltr" or "auto"
	SourceURL   string   // Empty = no source button
	SourceLabel string   // Tooltip of the source button
	MathJax     bool     // Load MathJax and typeset on DOMContentLoaded
	Stylesheets []string // External stylesheet URLs
}

// DefaultPage returns the page used when no options override it.
func DefaultPage() Page {
	return Page{
		Title:       DefaultTitle,
		Lang:        DefaultLang,
		Dir:         DefaultDir,
		SourceURL:   DefaultSourceURL,
		SourceLabel: DefaultSourceLabel,
		MathJax:     true,
		Stylesheets: append([]string(nil), DefaultStylesheets...),
	}
}

// Validate checks the direction and source URL.
// Does not mutate - uses case-insensitive comparison.
func (p *Page) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Dir) {
	case DirRTL, DirLTR, DirAuto:
	default:
		return fmt.Errorf("%w: %q (must be rtl, ltr, or auto)", ErrInvalidDirection, p.Dir)
	}

	if p.SourceURL != "" {
		u, err := url.Parse(p.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSourceURL, p.SourceURL)
		}
	}

	return nil
}

// withFrontMatter returns p with the fields set in fm applied.
func (p Page) withFrontMatter(fm pipeline.FrontMatter) Page {
	if fm.Title != "" {
		p.Title = fm.Title
	}
	if fm.Lang != "" {
		p.Lang = fm.Lang
	}
	if fm.Dir != "" {
		p.Dir = fm.Dir
	}
	if fm.Source != "" {
		p.SourceURL = fm.Source
	}
	if fm.SourceLabel != "" {
		p.SourceLabel = fm.SourceLabel
	}
	if fm.MathJax != nil {
		p.MathJax = *fm.MathJax
	}
	return p
}

// pageData converts p into template data around body.
func (p Page) pageData(css, body string) pipeline.PageData {
	return pipeline.PageData{
		Title:       p.Title,
		Lang:        p.Lang,
		Dir:         strings.ToLower(p.Dir),
		CSS:         template.CSS(css),   // #nosec G203 -- CSS comes from trusted assets or options
		Body:        template.HTML(body), // #nosec G203 -- fragment rendered by goldmark, optionally sanitized
		SourceURL:   p.SourceURL,
		SourceLabel: p.SourceLabel,
		MathJax:     p.MathJax,
		Stylesheets: p.Stylesheets,
	}
}
