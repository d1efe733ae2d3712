//go:build integration

package md2html

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if len(data) < 1000 {
		t.Errorf("PDF too small: %d bytes", len(data))
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header, got %q", data[:min(len(data), 8)])
	}
}

func TestRodConverter_ToPDF_Integration(t *testing.T) {
	c := newRodConverter(30 * time.Second)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pdf, err := c.ToPDF(ctx, `<!DOCTYPE html><html dir="rtl"><body><h1>سلام</h1><p>A4 page</p></body></html>`)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	assertValidPDF(t, pdf)
}

func TestConvertFile_PDF_Integration(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.md")
	out := filepath.Join(dir, "index.html")
	md := "# Report\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	if err := os.WriteFile(in, []byte(md), 0o600); err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(WithPDF(true), WithPage(Page{Dir: DirRTL, Lang: "fa", Title: "t"}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := conv.ConvertFile(ctx, in, out); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "index.pdf"))
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	assertValidPDF(t, pdf)
}
