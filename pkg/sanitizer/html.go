// Package sanitizer cleans HTML produced from user-supplied content.
package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// user-generated content rules, plus the class emitted by markdown buttons
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^btn$`)).OnElements("a")
	})
}

// EmailHTML keeps formatting, links and images, and removes scripts,
// event handlers, styles and javascript: URLs.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// EmailHTMLBytes is EmailHTML for byte slices.
func EmailHTMLBytes(b []byte) []byte {
	initPolicies()
	return emailPolicy.SanitizeBytes(b)
}
