package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for Markdown rendering.
var (
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrUnknownExtension = errors.New("unknown markdown extension")
)

// DefaultExtensions is the extension set used when none is configured:
// table support, extended syntax and attribute lists.
var DefaultExtensions = []string{"tables", "extra", "attr_list"}

// HighlightStyle is the chroma style used by the highlight extension.
const HighlightStyle = "github"

// FragmentRenderer abstracts Markdown to HTML fragment conversion.
type FragmentRenderer interface {
	Render(ctx context.Context, source []byte) (string, error)
}

// RendererOptions configures a GoldmarkRenderer.
type RendererOptions struct {
	// Extensions lists registry names; nil means DefaultExtensions.
	Extensions []string
}

// extensionSpec describes how one registry name maps onto goldmark.
type extensionSpec struct {
	extenders   []goldmark.Extender
	parserOpts  []parser.Option
	highlighter bool
}

var extensionRegistry = map[string]extensionSpec{
	"tables":        {extenders: []goldmark.Extender{extension.Table}},
	"extra":         {extenders: []goldmark.Extender{extension.Footnote, extension.DefinitionList, extension.Table}},
	"attr_list":     {extenders: []goldmark.Extender{attrList}},
	"footnotes":     {extenders: []goldmark.Extender{extension.Footnote}},
	"def_list":      {extenders: []goldmark.Extender{extension.DefinitionList}},
	"gfm":           {extenders: []goldmark.Extender{extension.GFM}},
	"strikethrough": {extenders: []goldmark.Extender{extension.Strikethrough}},
	"linkify":       {extenders: []goldmark.Extender{extension.Linkify}},
	"tasklist":      {extenders: []goldmark.Extender{extension.TaskList}},
	"typographer":   {extenders: []goldmark.Extender{extension.Typographer}},
	"toc":           {parserOpts: []parser.Option{parser.WithAutoHeadingID()}},
	"highlight":     {highlighter: true},
	"codehilite":    {highlighter: true},
}

// KnownExtensions returns the sorted list of registry names.
func KnownExtensions() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeExtensions lowercases, trims and de-duplicates names, keeping
// the first occurrence order. Returns ErrUnknownExtension for names missing
// from the registry.
func NormalizeExtensions(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		if _, ok := extensionRegistry[key]; !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownExtension, name, strings.Join(KnownExtensions(), ", "))
		}
		seen[key] = true
		out = append(out, key)
	}

	return out, nil
}

// GoldmarkRenderer converts Markdown to an HTML fragment using goldmark.
// A single instance is safe for concurrent use.
type GoldmarkRenderer struct {
	md         goldmark.Markdown
	extensions []string
	extraCSS   string
}

// NewGoldmarkRenderer builds a renderer with the requested extensions.
func NewGoldmarkRenderer(opts RendererOptions) (*GoldmarkRenderer, error) {
	names := opts.Extensions
	if names == nil {
		names = DefaultExtensions
	}

	names, err := NormalizeExtensions(names)
	if err != nil {
		return nil, err
	}

	var (
		extenders   []goldmark.Extender
		parserOpts  []parser.Option
		highlighter bool
	)
	for _, name := range names {
		entry := extensionRegistry[name]
		for _, ext := range entry.extenders {
			if !containsExtender(extenders, ext) {
				extenders = append(extenders, ext)
			}
		}
		parserOpts = append(parserOpts, entry.parserOpts...)
		highlighter = highlighter || entry.highlighter
	}

	r := &GoldmarkRenderer{extensions: names}

	if highlighter {
		extenders = append(extenders, highlighting.NewHighlighting(
			highlighting.WithStyle(HighlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, stylesheet emitted once per page
			),
		))
		css, err := highlightCSS()
		if err != nil {
			return nil, err
		}
		r.extraCSS = css
	}

	var rendererOpts []goldmark.Option
	if len(extenders) > 0 {
		rendererOpts = append(rendererOpts, goldmark.WithExtensions(extenders...))
	}
	if len(parserOpts) > 0 {
		rendererOpts = append(rendererOpts, goldmark.WithParserOptions(parserOpts...))
	}
	// Raw HTML (figures, captions) passes through like in the source documents.
	rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))

	r.md = goldmark.New(rendererOpts...)
	return r, nil
}

// Extensions returns the normalized extension names in use.
func (r *GoldmarkRenderer) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// ExtraCSS returns CSS required by enabled extensions (chroma classes).
func (r *GoldmarkRenderer) ExtraCSS() string {
	return r.extraCSS
}

// Render converts Markdown source to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *GoldmarkRenderer) Render(ctx context.Context, source []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert(source, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// containsExtender reports whether ext is already registered. "extra" and
// "tables" share the table extender, which must not be installed twice.
func containsExtender(list []goldmark.Extender, ext goldmark.Extender) bool {
	for _, e := range list {
		if e == ext {
			return true
		}
	}
	return false
}

// highlightCSS renders the chroma stylesheet matching HighlightStyle.
func highlightCSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return "", fmt.Errorf("generating highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ FragmentRenderer = (*GoldmarkRenderer)(nil)
