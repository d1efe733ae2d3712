package pipeline

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer scrubs an HTML fragment before it is placed in the page.
type Sanitizer interface {
	Sanitize(fragment string) string
}

// UGCSanitizer applies bluemonday's user-generated-content policy, extended
// with class attributes so highlight and footnote markup keeps its styling.
// The policy is built once and safe for concurrent use.
type UGCSanitizer struct {
	policy *bluemonday.Policy
}

// NewUGCSanitizer creates the sanitizer used by the sanitize option.
func NewUGCSanitizer() *UGCSanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowElements("figure", "figcaption")
	return &UGCSanitizer{policy: p}
}

// Sanitize returns fragment with disallowed elements and attributes removed.
func (s *UGCSanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}

// Compile-time interface check.
var _ Sanitizer = (*UGCSanitizer)(nil)
