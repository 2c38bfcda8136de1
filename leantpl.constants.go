package leantpl

// Version is the current leantpl library version.
const Version = "0.1.0"

// Engine defaults
const (
	// DefaultAutoescape enables HTML escaping for interpolated strings
	// unless overridden per engine or per autoescape block.
	DefaultAutoescape = true

	// DefaultWhileLimit is the hard iteration ceiling for while loops.
	DefaultWhileLimit = 1000
)

// Loader driver name constants
const (
	LoaderDriverNameFilesystem = "filesystem"
	LoaderDriverNameMap        = "map"
	LoaderDriverNamePostgres   = "postgres"
)

// Metadata key constants for error context
const (
	MetaKeyTemplate = "template"
)
