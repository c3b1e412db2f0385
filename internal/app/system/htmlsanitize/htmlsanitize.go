// Package htmlsanitize cleans user-supplied markup before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// rich allows the formatting a post editor produces. Scripts, event
// handlers, iframes and forms are removed.
var rich = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("style").OnElements("table", "th", "td")
	return p
}()

// plain strips every tag. Its output is HTML-escaped.
var plain = bluemonday.StrictPolicy()

// Sanitize returns post-style HTML with unsafe elements and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return rich.Sanitize(s)
}

// StripTags removes all markup from s and trims surrounding whitespace.
// Used for comments, memory text and other plain-text fields. The result
// is raw text: entities are decoded so that stripping twice is stable and
// escaping is left to whatever renders it.
func StripTags(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(plain.Sanitize(s)))
}

// IsPlainText reports whether s contains nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}
