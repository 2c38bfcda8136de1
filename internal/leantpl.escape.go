package internal

import (
	"strings"
)

// htmlEscaper replaces the characters that must not reach HTML output
// unescaped. Escaping is not idempotent; avoiding double-escaping is the
// caller's job via the safe filter.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML escapes ampersand, angle brackets, quotes and slash.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escapeValue applies the escaping layer to an interpolated value.
// Safe-marked values and non-strings pass through untouched.
func escapeValue(v any, autoescape bool) string {
	if safe, ok := v.(SafeString); ok {
		return string(safe)
	}
	s := anyToString(v)
	if !autoescape {
		return s
	}
	if _, isString := v.(string); isString {
		return EscapeHTML(s)
	}
	return s
}
