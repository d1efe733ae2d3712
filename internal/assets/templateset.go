package assets

// TemplateSet holds the templates that make up one page layout.
type TemplateSet struct {
	Name string // Identifier (name or directory path)
	Page string // html/template source of the full page
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// pageTemplateFile is the file every template set directory must contain.
const pageTemplateFile = "page.html"
