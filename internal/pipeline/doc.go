// Package pipeline implements the stages that turn a Markdown document into
// a complete HTML page:
//   - source decoding (BOM, line endings, UTF-8 validation)
//   - front matter extraction
//   - Markdown to HTML fragment conversion via Goldmark
//   - optional fragment sanitizing via bluemonday
//   - page assembly from an html/template page asset
//   - local reference resolution for browser snapshots
//
// Output files and PDF snapshots are handled by the root md2html package.
package pipeline
