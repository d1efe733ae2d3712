package pipeline

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// attrList extends goldmark's heading attributes ({#id .cls}) with the
// attribute list forms written for Python-Markdown documents:
//
//	## Heading {: #id .cls }
//
//	Paragraph text
//	{: .cls }
//
// Lists that do not parse into #id, .class or key=value tokens are left as text.
var attrList goldmark.Extender = &attrListExtension{}

type attrListExtension struct{}

func (e *attrListExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithAttribute(),
		parser.WithASTTransformers(util.Prioritized(&attrListTransformer{}, 500)),
	)
}

var (
	// trailingAttrList matches "{: ...}" (colon optional) at the end of a heading line.
	trailingAttrList = regexp.MustCompile(`[ \t]+\{:?[ \t]*([^{}\n]*?)[ \t]*\}$`)
	// lineAttrList matches a whole line holding only an attribute list.
	lineAttrList = regexp.MustCompile(`^\{:?[ \t]*([^{}\n]*?)[ \t]*\}$`)
)

type attrListTransformer struct{}

func (t *attrListTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			applyHeadingAttrs(node, source)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			applyParagraphAttrs(node, source)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// applyHeadingAttrs moves a trailing attribute list from the heading text
// onto the heading node.
func applyHeadingAttrs(h *ast.Heading, source []byte) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return
	}
	last := lines.At(lines.Len() - 1)
	line := bytes.TrimRight(last.Value(source), " \t\r\n")

	loc := trailingAttrList.FindSubmatchIndex(line)
	if loc == nil {
		return
	}
	attrs, ok := parseAttrList(string(line[loc[2]:loc[3]]))
	if !ok {
		return
	}
	cut := last.Start + loc[0]

	var trailing []*ast.Text
	for c := h.LastChild(); c != nil; c = c.PreviousSibling() {
		txt, isText := c.(*ast.Text)
		if !isText {
			return
		}
		trailing = append(trailing, txt)
		if txt.Segment.Start <= cut {
			break
		}
	}
	if len(trailing) == 0 || trailing[len(trailing)-1].Segment.Start > cut {
		return
	}

	for _, txt := range trailing {
		if txt.Segment.Start >= cut {
			h.RemoveChild(h, txt)
			continue
		}
		txt.Segment.Stop = cut
	}
	setAttrs(h, attrs)
}

// applyParagraphAttrs moves a final "{: ...}" line onto the paragraph node.
// A paragraph made of that line alone is left untouched.
func applyParagraphAttrs(p *ast.Paragraph, source []byte) {
	lines := p.Lines()
	if lines.Len() < 2 {
		return
	}
	last := lines.At(lines.Len() - 1)
	line := bytes.TrimSpace(last.Value(source))

	m := lineAttrList.FindSubmatch(line)
	if m == nil {
		return
	}
	attrs, ok := parseAttrList(string(m[1]))
	if !ok {
		return
	}

	var (
		trailing []*ast.Text
		content  []byte
	)
	for c := p.LastChild(); c != nil; c = c.PreviousSibling() {
		txt, isText := c.(*ast.Text)
		if !isText || txt.Segment.Start < last.Start {
			break
		}
		trailing = append(trailing, txt)
		content = append(append([]byte(nil), txt.Segment.Value(source)...), content...)
	}
	if !bytes.Equal(bytes.TrimSpace(content), line) {
		return
	}

	for _, txt := range trailing {
		p.RemoveChild(p, txt)
	}
	if txt, ok := p.LastChild().(*ast.Text); ok {
		txt.SetSoftLineBreak(false)
	}
	setAttrs(p, attrs)
}

type attr struct {
	name  string
	value string
}

// parseAttrList splits "#id .a .b key=value key2='x y'" into attributes.
func parseAttrList(list string) ([]attr, bool) {
	tokens, ok := splitAttrTokens(list)
	if !ok || len(tokens) == 0 {
		return nil, false
	}

	attrs := make([]attr, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "#") && len(tok) > 1:
			attrs = append(attrs, attr{name: "id", value: tok[1:]})
		case strings.HasPrefix(tok, ".") && len(tok) > 1:
			attrs = append(attrs, attr{name: "class", value: tok[1:]})
		default:
			name, value, found := strings.Cut(tok, "=")
			if !found || name == "" {
				return nil, false
			}
			attrs = append(attrs, attr{name: name, value: strings.Trim(value, `"'`)})
		}
	}
	return attrs, true
}

// splitAttrTokens splits on whitespace outside of quotes.
func splitAttrTokens(s string) ([]string, bool) {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
	)
	for _, r := range s {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, false
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, true
}

// setAttrs applies attrs to n; classes accumulate, other names overwrite.
func setAttrs(n ast.Node, attrs []attr) {
	for _, a := range attrs {
		if a.name == "class" {
			if existing, ok := n.AttributeString("class"); ok {
				if b, isBytes := existing.([]byte); isBytes && len(b) > 0 {
					n.SetAttributeString("class", []byte(string(b)+" "+a.value))
					continue
				}
			}
		}
		n.SetAttributeString(a.name, []byte(a.value))
	}
}
