// Package md2html converts Markdown reports to standalone HTML pages.
//
// # Quick Start
//
// Convert report.md to index.html with the default page:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	if err := conv.ConvertFile(ctx, "report.md", "index.html"); err != nil {
//	    log.Fatal(err)
//	}
//
// Convert returns the page without touching the filesystem:
//
//	result, err := conv.Convert(ctx, md2html.Input{Markdown: "# Hello"})
//	os.WriteFile("index.html", result.HTML, 0o644)
//
// # Conversion Pipeline
//
//  1. Read: decode UTF-8, strip a BOM, normalize line endings
//  2. Render: front matter, goldmark with the enabled extensions, optional
//     sanitization, then the page template
//  3. Write: the complete page replaces the output file
//  4. PDF (optional): print the page through headless Chrome (go-rod)
//
// Failures are *ConversionError values. errors.Is matches the stage
// sentinels (ErrReadMarkdown, ErrRenderMarkdown, ErrWriteHTML,
// ErrPDFGeneration) and StageOf reports the stage directly.
//
// # Configuration
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithExtensions("tables", "extra", "attr_list", "highlight"),
//	    md2html.WithStyle("minimal"),
//	    md2html.WithPage(md2html.Page{Title: "Report", Lang: "fa", Dir: md2html.DirRTL}),
//	)
//
// The default page is right-to-left, loads MathJax and links the reveal.js
// and Font Awesome stylesheets. A YAML front matter block may override the
// title, language, direction, source link and MathJax per document. A
// leading "---" block that is not a mapping of those keys is rendered as
// Markdown (a thematic break), so documents need no front matter awareness.
//
// # Parallel Processing
//
//	pool := md2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Assets
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        └── page.html
//
// A page template must reference {{.Body}}.
//
// # Browser Requirements
//
// Only WithPDF needs Chrome. go-rod downloads Chromium on first use; set
// ROD_BROWSER_BIN to use an installed binary and ROD_NO_SANDBOX=1 inside
// containers.
package md2html
