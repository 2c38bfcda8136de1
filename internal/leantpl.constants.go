package internal

// Default interpreter limits
const (
	// DefaultWhileLimit is the hard iteration ceiling for while loops.
	// Exceeding it stops the loop silently rather than raising.
	DefaultWhileLimit = 1000

	// DefaultAutoescape controls whether interpolated strings are
	// HTML-escaped unless marked safe.
	DefaultAutoescape = true
)

// Fail-open placeholder formats. These are emitted inline instead of
// aborting a render so template authors can see what went wrong.
const (
	PlaceholderMacroNotFound   = "<!-- Macro %s not found -->"
	PlaceholderIncludeNotFound = "<!-- Include not found: %s -->"
)

// Loop context keys exposed inside for-loop bodies under the "loop" name.
const (
	LoopKeyIndex    = "index"
	LoopKeyIndex0   = "index0"
	LoopKeyFirst    = "first"
	LoopKeyLast     = "last"
	LoopKeyLength   = "length"
	LoopKeyPrevItem = "previtem"
	LoopKeyNextItem = "nextitem"
	LoopVarName     = "loop"
	ItemVarName     = "item"
)

// Expression literal keywords (case-insensitive).
const (
	KeywordTrue  = "true"
	KeywordFalse = "false"
	KeywordNone  = "none"
	KeywordNull  = "null"
)

// Autoescape block argument values that enable escaping.
const (
	AutoescapeOn   = "on"
	AutoescapeTrue = "true"
	AutoescapeYes  = "yes"
)
