// Package htmlsanitize provides HTML sanitization for admin-entered rich
// text (service descriptions, promotion texts, legal pages). It uses
// bluemonday to strip potentially dangerous HTML while preserving safe
// formatting.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		policy = bluemonday.UGCPolicy()

		// Tables show up in legal pages and price descriptions
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowAttrs("class").OnElements("table", "th", "td", "tr")

		// Common text formatting from the rich text editor
		policy.AllowElements("u", "s", "sub", "sup", "mark")

		policy.AllowAttrs("style").OnElements("table", "th", "td")
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes. It preserves safe formatting like bold, italic, lists, links,
// and tables.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// StripTags removes all HTML tags, leaving only text content.
// Useful for excerpts and plain-text validation.
func StripTags(html string) string {
	if html == "" {
		return ""
	}
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(html))
}
