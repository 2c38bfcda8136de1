package internal

import (
	"fmt"
	"strings"
)

// String filter name constants
const (
	FilterNameUpper      = "upper"
	FilterNameLower      = "lower"
	FilterNameCapitalize = "capitalize"
	FilterNameTitle      = "title"
	FilterNameTrim       = "trim"
	FilterNameLstrip     = "lstrip"
	FilterNameRstrip     = "rstrip"
	FilterNameEscape     = "escape"
	FilterNameEscapeAlt  = "e"
	FilterNameSafe       = "safe"
	FilterNameFormat     = "format"
	FilterNamePluralize  = "pluralize"
)

// registerStringFilters registers string case and whitespace filters.
// Non-string values pass through unchanged, matching the catalog's
// fail-soft convention.
func registerStringFilters(r *FilterRegistry) {
	r.Register(FilterNameUpper, func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return strings.ToUpper(s), nil
		}
		return value, nil
	})

	r.Register(FilterNameLower, func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return strings.ToLower(s), nil
		}
		return value, nil
	})

	r.Register(FilterNameCapitalize, func(value any, args []string) (any, error) {
		s, ok := value.(string)
		if !ok || s == "" {
			return value, nil
		}
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:]), nil
	})

	r.Register(FilterNameTitle, func(value any, args []string) (any, error) {
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		words := strings.Fields(s)
		for i, word := range words {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
		return strings.Join(words, " "), nil
	})

	r.Register(FilterNameTrim, func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return value, nil
	})

	r.Register(FilterNameLstrip, func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return strings.TrimLeft(s, " \t\n\r"), nil
		}
		return value, nil
	})

	r.Register(FilterNameRstrip, func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return strings.TrimRight(s, " \t\n\r"), nil
		}
		return value, nil
	})

	escape := func(value any, args []string) (any, error) {
		if s, ok := value.(string); ok {
			return EscapeHTML(s), nil
		}
		return value, nil
	}
	r.Register(FilterNameEscape, escape)
	r.Register(FilterNameEscapeAlt, escape)

	// safe marks the value as exempt from the escaping layer.
	r.Register(FilterNameSafe, func(value any, args []string) (any, error) {
		return SafeString(anyToString(value)), nil
	})

	// format applies a printf-style verb to the value.
	r.Register(FilterNameFormat, func(value any, args []string) (any, error) {
		if len(args) == 0 || args[0] == "" {
			return anyToString(value), nil
		}
		return fmt.Sprintf(args[0], value), nil
	})

	// pluralize returns the singular form when the value is exactly 1,
	// the plural form otherwise. Defaults: "" / "s".
	r.Register(FilterNamePluralize, func(value any, args []string) (any, error) {
		singular := ""
		plural := "s"
		if len(args) > 0 {
			singular = args[0]
		}
		if len(args) > 1 {
			plural = args[1]
		}
		if n, ok := numericValue(value); ok && n == 1 {
			return singular, nil
		}
		return plural, nil
	})
}
