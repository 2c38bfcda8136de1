// Package leantpl is an embedded template rendering engine with a
// Jinja-flavored directive syntax: {{ variable }} interpolation with
// filter pipes, {% %} control-flow blocks (if/elif/else, for, while,
// set, raw, with, spaceless, autoescape), macros, includes, and
// single-parent template inheritance via extends/block.
//
// The engine is deliberately forgiving: a missing top-level template is
// the only hard render failure. Unknown variables, filters, macros, and
// includes degrade to the original directive text or a visible HTML
// comment placeholder, so one bad directive never takes down a page.
//
// Basic usage:
//
//	loader, _ := leantpl.NewFilesystemLoader("./templates")
//	engine := leantpl.MustNew(leantpl.WithLoader(loader))
//	out, err := engine.Render(ctx, "page.html", map[string]any{
//		"title": "Hello",
//	})
//
// One-off strings render without a loader:
//
//	out, err := engine.RenderString(ctx, "Hi {{ name }}", data)
//
// Interpolated strings are HTML-escaped by default; mark trusted
// values with the safe filter or a SafeString, or scope the behavior
// with {% autoescape off %} blocks.
package leantpl

import (
	"github.com/leantpl/leantpl/internal"
)

// FilterFunc transforms a value during filter pipeline evaluation. The
// args come from the template's colon-separated argument syntax.
type FilterFunc = internal.FilterFunc

// SafeString marks a string as pre-escaped trusted markup; the escaping
// layer passes it through verbatim.
type SafeString = internal.SafeString

// ValidationIssue is one structural template diagnostic with its
// 1-based source line.
type ValidationIssue = internal.Issue

// EscapeHTML escapes the HTML-significant characters of s the same way
// the rendering pipeline does.
func EscapeHTML(s string) string {
	return internal.EscapeHTML(s)
}
