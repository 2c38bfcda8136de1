package internal

import (
	"regexp"
)

// Kind classifies a template directive.
type Kind int

// Directive kinds, in recognition order. The first matching rule wins;
// text matching no rule is literal output.
const (
	KindLiteral Kind = iota
	KindComment
	KindExtends
	KindInclude
	KindLoad
	KindBlockDef
	KindEndBlock
	KindMacro
	KindEndMacro
	KindCall
	KindSet
	KindIf
	KindElif
	KindElse
	KindEndIf
	KindFor
	KindEndFor
	KindWhile
	KindEndWhile
	KindBreak
	KindContinue
	KindRaw
	KindEndRaw
	KindWith
	KindEndWith
	KindSpaceless
	KindEndSpaceless
	KindAutoescape
	KindEndAutoescape
	KindFilter
	KindVariable
)

// kindNames maps kinds to names for logging and diagnostics.
var kindNames = map[Kind]string{
	KindLiteral:       "literal",
	KindComment:       "comment",
	KindExtends:       "extends",
	KindInclude:       "include",
	KindLoad:          "load",
	KindBlockDef:      "block",
	KindEndBlock:      "endblock",
	KindMacro:         "macro",
	KindEndMacro:      "endmacro",
	KindCall:          "call",
	KindSet:           "set",
	KindIf:            "if",
	KindElif:          "elif",
	KindElse:          "else",
	KindEndIf:         "endif",
	KindFor:           "for",
	KindEndFor:        "endfor",
	KindWhile:         "while",
	KindEndWhile:      "endwhile",
	KindBreak:         "break",
	KindContinue:      "continue",
	KindRaw:           "raw",
	KindEndRaw:        "endraw",
	KindWith:          "with",
	KindEndWith:       "endwith",
	KindSpaceless:     "spaceless",
	KindEndSpaceless:  "endspaceless",
	KindAutoescape:    "autoescape",
	KindEndAutoescape: "endautoescape",
	KindFilter:        "filter",
	KindVariable:      "variable",
}

// String returns the directive kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindLiteral]
}

// Directive is the transient classification record produced by the
// Recognizer. It is not persisted beyond the current render pass.
type Directive struct {
	Kind   Kind
	Groups []string // captured groups, excluding the full match
	Raw    string   // the matched directive text
}

// Recognizer classifies template text against a fixed table of pattern
// rules. Implementations are stateless and deterministic; the interface
// exists so the regex-driven scanner could later be swapped for a real
// lexer without touching the interpreter's control flow.
type Recognizer interface {
	// Classify matches a single tag (the text of one {% ... %} or
	// {{ ... }} span) against the rule table.
	Classify(tag string) Directive

	// Pattern returns the compiled pattern for a directive kind, for
	// callers that need to scan or substitute across a larger span.
	Pattern(kind Kind) *regexp.Regexp

	// Tags returns the pattern matching any {% ... %} tag, used by the
	// interpreter to split content into literal and directive tokens.
	Tags() *regexp.Regexp
}

// regexRecognizer is the pattern-driven Recognizer. The table mirrors the
// directive grammar: anchored rules tried in order, first match wins.
type regexRecognizer struct {
	rules    []rule
	patterns map[Kind]*regexp.Regexp
	tags     *regexp.Regexp
}

type rule struct {
	kind Kind
	re   *regexp.Regexp
}

// Pattern sources. Anchored variants are used for classification; the
// unanchored forms are exposed via Pattern for scanning and substitution.
var patternSources = map[Kind]string{
	KindComment:       `\{#.*?#\}`,
	KindExtends:       `\{%\s*extends\s+["'](.*?)["']\s*%\}`,
	KindInclude:       `\{%\s*include\s+["'](.*?)["']\s*%\}`,
	KindLoad:          `\{%\s*load\s+["'](.*?)["']\s*%\}`,
	KindBlockDef:      `\{%\s*block\s+(\w+)\s*%\}`,
	KindEndBlock:      `\{%\s*endblock\s*%\}`,
	KindMacro:         `\{%\s*macro\s+(\w+)\((.*?)\)\s*%\}`,
	KindEndMacro:      `\{%\s*endmacro\s*%\}`,
	KindCall:          `\{%\s*call\s+(\w+)\((.*?)\)\s*%\}`,
	KindSet:           `\{%\s*set\s+(\w+)\s*=\s*(.*?)\s*%\}`,
	KindIf:            `\{%\s*if\s+(.*?)\s*%\}`,
	KindElif:          `\{%\s*elif\s+(.*?)\s*%\}`,
	KindElse:          `\{%\s*else\s*%\}`,
	KindEndIf:         `\{%\s*endif\s*%\}`,
	KindFor:           `\{%\s*for\s+(\w+(?:\s*,\s*\w+)*)\s+in\s+(.*?)(?:\s+if\s+(.*?))?\s*%\}`,
	KindEndFor:        `\{%\s*endfor\s*%\}`,
	KindWhile:         `\{%\s*while\s+(.*?)\s*%\}`,
	KindEndWhile:      `\{%\s*endwhile\s*%\}`,
	KindBreak:         `\{%\s*break\s*%\}`,
	KindContinue:      `\{%\s*continue\s*%\}`,
	KindRaw:           `\{%\s*raw\s*%\}`,
	KindEndRaw:        `\{%\s*endraw\s*%\}`,
	KindWith:          `\{%\s*with\s+(.*?)\s*%\}`,
	KindEndWith:       `\{%\s*endwith\s*%\}`,
	KindSpaceless:     `\{%\s*spaceless\s*%\}`,
	KindEndSpaceless:  `\{%\s*endspaceless\s*%\}`,
	KindAutoescape:    `\{%\s*autoescape\s+(\w+)\s*%\}`,
	KindEndAutoescape: `\{%\s*endautoescape\s*%\}`,
	KindFilter:        `\{\{\s*(.*?)\s*\|\s*(\w+)(?::(.*?))?\s*\}\}`,
	KindVariable:      `\{\{([^}]+)\}\}`,
}

// classificationOrder lists rules in the order they are tried. More
// specific tag forms come before the generic variable rule.
var classificationOrder = []Kind{
	KindComment,
	KindExtends,
	KindInclude,
	KindLoad,
	KindBlockDef,
	KindEndBlock,
	KindMacro,
	KindEndMacro,
	KindCall,
	KindSet,
	KindIf,
	KindElif,
	KindElse,
	KindEndIf,
	KindFor,
	KindEndFor,
	KindWhile,
	KindEndWhile,
	KindBreak,
	KindContinue,
	KindRaw,
	KindEndRaw,
	KindWith,
	KindEndWith,
	KindSpaceless,
	KindEndSpaceless,
	KindAutoescape,
	KindEndAutoescape,
	KindFilter,
	KindVariable,
}

// tagPattern matches any block tag span for tokenization.
const tagPattern = `\{%.*?%\}`

// NewRecognizer builds the pattern-driven recognizer with the fixed rule
// table compiled once.
func NewRecognizer() Recognizer {
	r := &regexRecognizer{
		patterns: make(map[Kind]*regexp.Regexp, len(patternSources)),
		tags:     regexp.MustCompile(tagPattern),
	}
	for _, kind := range classificationOrder {
		src := patternSources[kind]
		r.patterns[kind] = regexp.MustCompile(src)
		r.rules = append(r.rules, rule{
			kind: kind,
			re:   regexp.MustCompile(`^` + src + `$`),
		})
	}
	return r
}

// Classify matches a tag against the rule table. Tags matching no rule
// are literal output.
func (r *regexRecognizer) Classify(tag string) Directive {
	for _, rule := range r.rules {
		m := rule.re.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		return Directive{
			Kind:   rule.kind,
			Groups: m[1:],
			Raw:    tag,
		}
	}
	return Directive{Kind: KindLiteral, Raw: tag}
}

// Pattern returns the unanchored compiled pattern for a kind.
func (r *regexRecognizer) Pattern(kind Kind) *regexp.Regexp {
	return r.patterns[kind]
}

// Tags returns the pattern matching any {% ... %} tag.
func (r *regexRecognizer) Tags() *regexp.Regexp {
	return r.tags
}
