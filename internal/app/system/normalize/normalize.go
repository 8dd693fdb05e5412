// Package normalize holds canonicalization helpers for user-supplied fields.
package normalize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// namePolicy strips every HTML element from display names; registration and
// webhook payloads are not trusted to be markup-free.
var namePolicy = bluemonday.StrictPolicy()

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name cleans a display name: markup is stripped, surrounding whitespace is
// trimmed, and interior runs of whitespace collapse to single spaces. Case is
// preserved.
func Name(s string) string {
	s = html.UnescapeString(namePolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
