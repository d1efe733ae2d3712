package pipeline

// Notes:
// - Rendering of attribute lists is covered in md2html_test.go; this file
//   checks token parsing only

import (
	"reflect"
	"testing"
)

func TestParseAttrList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   []attr
		wantOK bool
	}{
		{
			name:   "id and classes",
			input:  "#intro .wide .dark",
			want:   []attr{{"id", "intro"}, {"class", "wide"}, {"class", "dark"}},
			wantOK: true,
		},
		{
			name:   "quoted value with spaces",
			input:  `title="A caption" .fig`,
			want:   []attr{{"title", "A caption"}, {"class", "fig"}},
			wantOK: true,
		},
		{
			name:   "single quotes",
			input:  "lang='fa'",
			want:   []attr{{"lang", "fa"}},
			wantOK: true,
		},
		{name: "bare word", input: "note"},
		{name: "empty", input: "   "},
		{name: "lone hash", input: "#"},
		{name: "unterminated quote", input: `title="open`},
		{name: "missing key", input: "=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseAttrList(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseAttrList(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAttrList(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
