package pipeline

import (
	"bytes"
	"errors"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when the Markdown source is not valid UTF-8.
var ErrInvalidEncoding = errors.New("markdown source is not valid UTF-8")

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// DecodeSource validates raw Markdown bytes as UTF-8, drops a leading byte
// order mark and converts \r\n and \r line endings to \n.
func DecodeSource(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return nil, ErrInvalidEncoding
	}
	return crlfOrCR.ReplaceAll(raw, []byte("\n")), nil
}
