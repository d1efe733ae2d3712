package pipeline

import (
	"bytes"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

// FrontMatter holds the page fields a document may set in its YAML header.
// Empty fields leave the configured page values untouched.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Lang        string `yaml:"lang"`
	Dir         string `yaml:"dir"`
	Source      string `yaml:"source"`
	SourceLabel string `yaml:"sourceLabel"`
	MathJax     *bool  `yaml:"mathjax"`
}

// yamlFrontMatter only recognizes "---" blocks whose content decodes into
// FrontMatter without unknown keys.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yamlutil.UnmarshalStrict)

// IsZero reports whether no field was set.
func (fm FrontMatter) IsZero() bool {
	return fm == FrontMatter{}
}

// ParseFrontMatter splits source into its front matter and Markdown body.
//
// A leading "---" block is front matter only when it is a YAML mapping that
// sets FrontMatter keys and nothing else. Anything else (a thematic break
// followed by prose, a mapping with other keys, a block setting nothing) is
// Markdown, and source is returned unchanged with a zero FrontMatter.
func ParseFrontMatter(source []byte) (FrontMatter, []byte) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFrontMatter)
	if err != nil || meta.IsZero() {
		return FrontMatter{}, source
	}

	return meta, body
}
