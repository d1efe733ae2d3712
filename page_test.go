package md2html

import (
	"errors"
	"testing"

	"github.com/alnah/go-md2html/internal/pipeline"
)

func TestDefaultPage(t *testing.T) {
	t.Parallel()

	p := DefaultPage()
	if p.Title != DefaultTitle || p.Lang != DefaultLang || p.Dir != DirRTL {
		t.Errorf("DefaultPage() = %+v", p)
	}
	if !p.MathJax {
		t.Error("MathJax should be enabled by default")
	}
	if p.SourceURL != DefaultSourceURL {
		t.Errorf("SourceURL = %q", p.SourceURL)
	}
	if len(p.Stylesheets) != len(DefaultStylesheets) {
		t.Errorf("Stylesheets = %v", p.Stylesheets)
	}

	p.Stylesheets[0] = "changed"
	if DefaultStylesheets[0] == "changed" {
		t.Error("DefaultPage() must copy DefaultStylesheets")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *Page
		wantErr error
	}{
		{name: "nil page", page: nil},
		{name: "rtl", page: &Page{Dir: "rtl"}},
		{name: "uppercase ltr", page: &Page{Dir: "LTR"}},
		{name: "auto with http source", page: &Page{Dir: "auto", SourceURL: "http://example.com/x"}},
		{name: "empty dir", page: &Page{}, wantErr: ErrInvalidDirection},
		{name: "bad dir", page: &Page{Dir: "down"}, wantErr: ErrInvalidDirection},
		{name: "javascript source", page: &Page{Dir: "rtl", SourceURL: "javascript:alert(1)"}, wantErr: ErrInvalidSourceURL},
		{name: "relative source", page: &Page{Dir: "rtl", SourceURL: "repo/main"}, wantErr: ErrInvalidSourceURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestPage_WithFrontMatter(t *testing.T) {
	t.Parallel()

	off := false
	base := DefaultPage()

	got := base.withFrontMatter(pipeline.FrontMatter{
		Title:   "Overridden",
		Dir:     "ltr",
		Source:  "https://example.com/src",
		MathJax: &off,
	})

	if got.Title != "Overridden" || got.Dir != "ltr" || got.SourceURL != "https://example.com/src" {
		t.Errorf("withFrontMatter() = %+v", got)
	}
	if got.MathJax {
		t.Error("MathJax should be disabled by front matter")
	}
	if got.Lang != base.Lang || got.SourceLabel != base.SourceLabel {
		t.Error("unset front matter fields must keep page values")
	}
	if base.Title != DefaultTitle {
		t.Error("withFrontMatter() must not mutate the receiver")
	}
}
