package md2html_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	md2html "github.com/alnah/go-md2html"
)

func Example() {
	conv, err := md2html.NewConverter()
	if err != nil {
		log.Fatal(err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "# Hello",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.TrimSpace(result.Fragment))
	fmt.Println(strings.Contains(string(result.HTML), `<div dir="rtl" class="container">`))
	// Output:
	// <h1 id="hello">Hello</h1>
	// true
}

func ExampleWithPage() {
	conv, err := md2html.NewConverter(
		md2html.WithPage(md2html.Page{Title: "Notes", Lang: "en", Dir: md2html.DirLTR}),
		md2html.WithStyle(""),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{Markdown: "text"})
	if err != nil {
		log.Fatal(err)
	}

	page := string(result.HTML)
	fmt.Println(strings.Contains(page, "<title>Notes</title>"))
	fmt.Println(strings.Contains(page, "MathJax"))
	// Output:
	// true
	// false
}

func ExampleStageOf() {
	conv, err := md2html.NewConverter()
	if err != nil {
		log.Fatal(err)
	}
	defer conv.Close()

	err = conv.ConvertFile(context.Background(), "missing.md", "index.html")
	stage, _ := md2html.StageOf(err)
	fmt.Println(stage, errors.Is(err, md2html.ErrReadMarkdown))
	// Output:
	// read true
}
