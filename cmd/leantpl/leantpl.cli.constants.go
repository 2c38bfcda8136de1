package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate   = "template"
	FlagData       = "data"
	FlagDataFile   = "data-file"
	FlagOutput     = "output"
	FlagRoot       = "root"
	FlagNoEscape   = "no-escape"
	FlagFormat     = "format"
	FlagStrictMode = "strict"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagRootShort     = "r"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand  = "unknown command"
	ErrMsgMissingTemplate = "template source required"
	ErrMsgInvalidData     = "invalid context data"
	ErrMsgReadFileFailed  = "failed to read file"
	ErrMsgBadRoot         = "invalid template root"
	ErrMsgRenderFailed    = "template rendering failed"
	ErrMsgWriteFailed     = "failed to write output"
	ErrMsgInvalidFormat   = "invalid output format"
)

// Help text templates
const (
	HelpMainUsage = `leantpl - forgiving template rendering CLI

Usage:
    leantpl <command> [options]

Commands:
    render      Render a template with context data
    validate    Check a template's block structure
    version     Show version information
    help        Show help for a command

Use "leantpl help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template with context data

Usage:
    leantpl render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --data <json|yaml>  Inline context data
    -f, --data-file <file>  Context data file (JSON or YAML)
    -r, --root <dir>        Template root for include/extends
                            (default: the template file's directory)
    -o, --output <file>     Output file (default: stdout)
    --no-escape             Disable HTML autoescaping

Examples:
    leantpl render -t page.html -d '{"name": "Alice"}'
    leantpl render -t page.html -f context.yaml
    cat page.html | leantpl render -t - -r ./templates
    leantpl render -t page.html -f context.json -o out.html`

	HelpValidateUsage = `Check a template's block structure

Usage:
    leantpl validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Exit code 3 when issues are found. Rendering tolerates every issue
this reports; the diagnostics exist for template authors.

Examples:
    leantpl validate -t page.html
    cat page.html | leantpl validate -t -`

	HelpVersionUsage = `Show version information

Usage:
    leantpl version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    leantpl help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format
const (
	VersionTextTemplate = "leantpl version %s\nGo: %s"
)

// Validation output format templates
const (
	ValidationTextSuccess     = "Template is valid"
	ValidationTextIssueHeader = "Validation issues:"
	ValidationTextIssueFormat = "  line %d: %s"
	ValidationTextSummary     = "%d issue(s)"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
