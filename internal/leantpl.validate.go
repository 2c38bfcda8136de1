package internal

import (
	"fmt"
	"strings"
)

// Issue is one structural template diagnostic, with the 1-based source
// line it was detected on.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// blockCloser maps a closing directive kind to the opener it pairs with.
var blockCloser = map[Kind]Kind{
	KindEndIf:         KindIf,
	KindEndFor:        KindFor,
	KindEndWhile:      KindWhile,
	KindEndMacro:      KindMacro,
	KindEndRaw:        KindRaw,
	KindEndWith:       KindWith,
	KindEndSpaceless:  KindSpaceless,
	KindEndAutoescape: KindAutoescape,
	KindEndBlock:      KindBlockDef,
}

// blockOpener is the reverse of blockCloser.
var blockOpener = func() map[Kind]bool {
	m := make(map[Kind]bool, len(blockCloser))
	for _, open := range blockCloser {
		m[open] = true
	}
	return m
}()

// ValidateSource checks a template for structural problems: closers
// without a matching opener, mismatched open/close pairs, and blocks
// left open at end of input. Rendering tolerates all of these; this
// pass exists so template authors can find them.
func (in *Interpreter) ValidateSource(source string) []Issue {
	type open struct {
		kind Kind
		line int
	}
	var stack []open
	var issues []Issue

	lineOf := func(offset int) int {
		return 1 + strings.Count(source[:offset], "\n")
	}

	for _, t := range in.tokenize(source) {
		kind := t.dir.Kind
		if blockOpener[kind] {
			stack = append(stack, open{kind: kind, line: lineOf(t.start)})
			continue
		}
		opener, isCloser := blockCloser[kind]
		if !isCloser {
			continue
		}
		if len(stack) == 0 {
			issues = append(issues, Issue{
				Line:    lineOf(t.start),
				Message: fmt.Sprintf("%s without matching %s", kind, opener),
			})
			continue
		}
		top := stack[len(stack)-1]
		if top.kind != opener {
			issues = append(issues, Issue{
				Line:    lineOf(t.start),
				Message: fmt.Sprintf("%s closes %s opened on line %d", kind, top.kind, top.line),
			})
		}
		stack = stack[:len(stack)-1]
	}

	for _, o := range stack {
		issues = append(issues, Issue{
			Line:    o.line,
			Message: fmt.Sprintf("unclosed %s block", o.kind),
		})
	}
	return issues
}
