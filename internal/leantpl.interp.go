package internal

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// LoadFunc loads raw template source by name. It is the interpreter's
// only I/O boundary; include and extends resolution go through it.
type LoadFunc func(ctx context.Context, name string) (string, error)

// Config holds the interpreter settings fixed at engine construction.
type Config struct {
	// Autoescape is the initial escaping-layer state for each render.
	Autoescape bool

	// WhileLimit is the hard iteration ceiling for while loops.
	WhileLimit int
}

// Interpreter is the recursive block-structured rendering engine. It
// walks template text directive-by-directive, dispatching to the
// expression evaluator, filter pipeline, macro registry, and include and
// inheritance resolvers. One render call is synchronous single-threaded
// recursion over its own scope copies; the registries it shares are
// individually locked.
type Interpreter struct {
	rec     Recognizer
	filters *FilterRegistry
	macros  *MacroRegistry
	load    LoadFunc
	cfg     Config
	logger  *zap.Logger
}

// NewInterpreter creates an interpreter over the given registries.
func NewInterpreter(rec Recognizer, filters *FilterRegistry, macros *MacroRegistry, load LoadFunc, cfg Config, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WhileLimit <= 0 {
		cfg.WhileLimit = DefaultWhileLimit
	}
	return &Interpreter{
		rec:     rec,
		filters: filters,
		macros:  macros,
		load:    load,
		cfg:     cfg,
		logger:  logger,
	}
}

// renderState is the per-branch mutable rendering state. It is passed by
// value so toggles (autoescape blocks, loop membership) restore on exit.
type renderState struct {
	autoescape bool
	inLoop     bool
}

// blockSignal propagates break/continue out of nested block renders up
// to the enclosing loop.
type blockSignal int

const (
	sigNone blockSignal = iota
	sigBreak
	sigContinue
)

// Render renders template source against a scope. baseDir is the
// directory of the template being rendered; includes and parent
// templates resolve relative to it.
func (in *Interpreter) Render(ctx context.Context, source string, scope *Scope, baseDir string) (string, error) {
	st := renderState{autoescape: in.cfg.Autoescape}
	return in.renderSource(ctx, source, scope, baseDir, st)
}

// renderSource checks for inheritance, then renders content. Includes
// re-enter here so included templates may themselves extend a parent.
func (in *Interpreter) renderSource(ctx context.Context, source string, scope *Scope, baseDir string, st renderState) (string, error) {
	if in.rec.Pattern(KindExtends).MatchString(source) {
		return in.renderWithInheritance(ctx, source, scope, baseDir, st)
	}
	out, _, err := in.renderContent(ctx, source, scope, baseDir, st)
	return out, err
}

// renderContent runs the rendering pipeline over one span of template
// text: raw-body stashing, macro collection and expansion, includes,
// comment stripping, block interpretation, filter expressions, variable
// interpolation. Raw bodies are stashed before anything else so no pass
// sees their directives.
// The returned signal is non-none when a break or continue directive
// escaped this span.
func (in *Interpreter) renderContent(ctx context.Context, content string, scope *Scope, baseDir string, st renderState) (string, blockSignal, error) {
	if err := ctx.Err(); err != nil {
		return "", sigNone, err
	}

	stash := &rawStash{}
	content = in.stashRawBlocks(content, stash)
	content = in.collectMacros(content, stash)
	content, err := in.expandCalls(ctx, content, scope, baseDir, st)
	if err != nil {
		return "", sigNone, err
	}
	content, err = in.expandIncludes(ctx, content, scope, baseDir, st)
	if err != nil {
		return "", sigNone, err
	}
	content = in.rec.Pattern(KindComment).ReplaceAllString(content, "")

	out, sig, err := in.processBlocks(ctx, content, scope, baseDir, st)
	if err != nil {
		return "", sigNone, err
	}

	out = in.processFilters(out, scope)
	out = in.replaceVariables(out, scope, st)
	out = stash.restore(out)

	return out, sig, nil
}

// token is one classified directive tag with its span in the content.
type token struct {
	start, end int
	dir        Directive
}

// tokenize splits content into classified {% ... %} tags.
func (in *Interpreter) tokenize(content string) []token {
	spans := in.rec.Tags().FindAllStringIndex(content, -1)
	tokens := make([]token, 0, len(spans))
	for _, span := range spans {
		tokens = append(tokens, token{
			start: span[0],
			end:   span[1],
			dir:   in.rec.Classify(content[span[0]:span[1]]),
		})
	}
	return tokens
}

// findBlockEnd locates the matching closing directive using a
// depth-counted scan: depth increments on re-encountering the opening
// kind and decrements on the closing kind. Unclosed blocks fall back to
// end of input rather than failing.
func findBlockEnd(tokens []token, start int, openKind, closeKind Kind) (int, bool) {
	depth := 1
	for i := start + 1; i < len(tokens); i++ {
		switch tokens[i].dir.Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return len(tokens), false
}

// bodySpan returns the text strictly between an opening token and its
// close. When the close fell back to end of input, the body runs to the
// end of the content.
func bodySpan(content string, tokens []token, open, close int) string {
	start := tokens[open].end
	if close >= len(tokens) {
		return content[start:]
	}
	return content[start:tokens[close].start]
}

// after returns the walk position following a (possibly fallback) close
// token index.
func after(tokens []token, close int) int {
	if close >= len(tokens) {
		return len(tokens)
	}
	return close + 1
}

// spanEnd returns the byte offset just past a consumed block span, so the
// literal-text cursor skips the block body and its closing tag.
func spanEnd(content string, tokens []token, close int) int {
	if close >= len(tokens) {
		return len(content)
	}
	return tokens[close].end
}

// processBlocks interprets the block directives in content. Literal text
// between directives is emitted as-is for the later filter and variable
// passes.
func (in *Interpreter) processBlocks(ctx context.Context, content string, scope *Scope, baseDir string, st renderState) (string, blockSignal, error) {
	tokens := in.tokenize(content)
	var b strings.Builder
	pos := 0

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		b.WriteString(content[pos:t.start])
		pos = t.end

		switch t.dir.Kind {
		case KindIf:
			end, _ := findBlockEnd(tokens, i, KindIf, KindEndIf)
			out, sig, err := in.renderConditional(ctx, content, tokens, i, end, scope, baseDir, st)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(out)
			if sig != sigNone {
				return b.String(), sig, nil
			}
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindFor:
			end, _ := findBlockEnd(tokens, i, KindFor, KindEndFor)
			body := bodySpan(content, tokens, i, end)
			out, err := in.renderForLoop(ctx, t.dir, body, scope, baseDir, st)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(out)
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindWhile:
			end, _ := findBlockEnd(tokens, i, KindWhile, KindEndWhile)
			body := bodySpan(content, tokens, i, end)
			out, err := in.renderWhileLoop(ctx, t.dir.Groups[0], body, scope, baseDir, st)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(out)
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindSet:
			value, err := Evaluate(t.dir.Groups[1], scope)
			if err != nil {
				in.logger.Debug("set expression unresolved",
					zap.String("name", t.dir.Groups[0]),
					zap.Error(err))
				value = nil
			}
			scope.Set(t.dir.Groups[0], value)
			i++

		case KindWith:
			end, _ := findBlockEnd(tokens, i, KindWith, KindEndWith)
			body := bodySpan(content, tokens, i, end)
			withScope := scope.Copy()
			bindAssignments(t.dir.Groups[0], scope, withScope)
			out, sig, err := in.renderContent(ctx, body, withScope, baseDir, st)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(out)
			if sig != sigNone {
				return b.String(), sig, nil
			}
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindSpaceless:
			end, _ := findBlockEnd(tokens, i, KindSpaceless, KindEndSpaceless)
			body := bodySpan(content, tokens, i, end)
			out, sig, err := in.renderContent(ctx, body, scope, baseDir, st)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(collapseBetweenTags(out))
			if sig != sigNone {
				return b.String(), sig, nil
			}
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindAutoescape:
			end, _ := findBlockEnd(tokens, i, KindAutoescape, KindEndAutoescape)
			body := bodySpan(content, tokens, i, end)
			bodyState := st
			bodyState.autoescape = isAutoescapeOn(t.dir.Groups[0])
			out, sig, err := in.renderContent(ctx, body, scope, baseDir, bodyState)
			if err != nil {
				return "", sigNone, err
			}
			b.WriteString(out)
			if sig != sigNone {
				return b.String(), sig, nil
			}
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		case KindBreak:
			if st.inLoop {
				return b.String(), sigBreak, nil
			}
			b.WriteString(t.dir.Raw)
			i++

		case KindContinue:
			if st.inLoop {
				return b.String(), sigContinue, nil
			}
			b.WriteString(t.dir.Raw)
			i++

		case KindBlockDef, KindEndBlock:
			// Inheritance markers carry no output of their own; the
			// default content between them renders normally.
			i++

		case KindLoad, KindExtends:
			i++

		case KindMacro:
			// Already collected; skip the definition span defensively.
			end, _ := findBlockEnd(tokens, i, KindMacro, KindEndMacro)
			pos = spanEnd(content, tokens, end)
			i = after(tokens, end)

		default:
			// Unmatched closers and unknown tags stay visible in the
			// output so authors can spot them.
			b.WriteString(t.dir.Raw)
			i++
		}
	}

	b.WriteString(content[pos:])
	return b.String(), sigNone, nil
}

// renderConditional renders an if/elif/else chain. Branch boundaries are
// the elif and else directives at nesting depth zero inside the if span;
// the first branch whose condition holds renders against a scope copy.
func (in *Interpreter) renderConditional(ctx context.Context, content string, tokens []token, open, end int, scope *Scope, baseDir string, st renderState) (string, blockSignal, error) {
	type branch struct {
		cond     string
		isElse   bool
		bodyFrom int // byte offset
		bodyTo   int
	}

	closeAt := len(content)
	if end < len(tokens) {
		closeAt = tokens[end].start
	}

	branches := []branch{{cond: tokens[open].dir.Groups[0], bodyFrom: tokens[open].end, bodyTo: closeAt}}
	depth := 0
	for j := open + 1; j < end && j < len(tokens); j++ {
		switch tokens[j].dir.Kind {
		case KindIf:
			depth++
		case KindEndIf:
			depth--
		case KindElif, KindElse:
			if depth != 0 {
				continue
			}
			branches[len(branches)-1].bodyTo = tokens[j].start
			next := branch{bodyFrom: tokens[j].end, bodyTo: closeAt}
			if tokens[j].dir.Kind == KindElif {
				next.cond = tokens[j].dir.Groups[0]
			} else {
				next.isElse = true
			}
			branches = append(branches, next)
		}
	}

	for _, br := range branches {
		if !br.isElse && !EvaluateCondition(br.cond, scope) {
			continue
		}
		return in.renderContent(ctx, content[br.bodyFrom:br.bodyTo], scope.Copy(), baseDir, st)
	}
	return "", sigNone, nil
}

// renderForLoop renders one for loop: the iterable is evaluated once,
// optionally filtered by the trailing if clause, then the body renders
// per item against a fresh scope copy carrying the loop context record.
func (in *Interpreter) renderForLoop(ctx context.Context, dir Directive, body string, scope *Scope, baseDir string, st renderState) (string, error) {
	varNames := splitVarNames(dir.Groups[0])
	iterable, err := Evaluate(dir.Groups[1], scope)
	if err != nil {
		in.logger.Debug("for iterable unresolved",
			zap.String("expr", dir.Groups[1]),
			zap.Error(err))
		return "", nil
	}
	items, ok := asSequence(iterable)
	if !ok {
		return "", nil
	}

	if filterCond := dir.Groups[2]; filterCond != "" {
		filtered := make([]any, 0, len(items))
		for _, item := range items {
			probe := scope.Copy()
			bindLoopVars(probe, varNames, item)
			probe.Set(ItemVarName, item)
			if EvaluateCondition(filterCond, probe) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	bodyState := st
	bodyState.inLoop = true

	var b strings.Builder
	for index, item := range items {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		loopScope := scope.Copy()
		bindLoopVars(loopScope, varNames, item)
		loopScope.Set(LoopVarName, loopContext(items, index))

		out, sig, err := in.renderContent(ctx, body, loopScope, baseDir, bodyState)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		if sig == sigBreak {
			break
		}
	}
	return b.String(), nil
}

// loopContext synthesizes the per-iteration loop record.
func loopContext(items []any, index int) map[string]any {
	loop := map[string]any{
		LoopKeyIndex:  index + 1,
		LoopKeyIndex0: index,
		LoopKeyFirst:  index == 0,
		LoopKeyLast:   index == len(items)-1,
		LoopKeyLength: len(items),
	}
	if index > 0 {
		loop[LoopKeyPrevItem] = items[index-1]
	}
	if index < len(items)-1 {
		loop[LoopKeyNextItem] = items[index+1]
	}
	return loop
}

// splitVarNames parses the loop variable list, which may be a single
// name or a comma-separated unpacking list.
func splitVarNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		names = append(names, strings.TrimSpace(part))
	}
	return names
}

// bindLoopVars binds the loop variables for one item, unpacking the item
// across multiple names when requested. Names beyond the item's length
// are bound to nil.
func bindLoopVars(scope *Scope, names []string, item any) {
	if len(names) == 1 {
		scope.Set(names[0], item)
		return
	}
	elements, ok := asSequence(item)
	if !ok {
		scope.Set(names[0], item)
		for _, name := range names[1:] {
			scope.Set(name, nil)
		}
		return
	}
	for i, name := range names {
		if i < len(elements) {
			scope.Set(name, elements[i])
		} else {
			scope.Set(name, nil)
		}
	}
}

// renderWhileLoop re-evaluates the condition before every iteration and
// stops silently at the iteration ceiling. Each iteration renders the
// body against its own scope copy.
func (in *Interpreter) renderWhileLoop(ctx context.Context, cond, body string, scope *Scope, baseDir string, st renderState) (string, error) {
	bodyState := st
	bodyState.inLoop = true

	var b strings.Builder
	iterations := 0
	for EvaluateCondition(cond, scope) && iterations < in.cfg.WhileLimit {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, sig, err := in.renderContent(ctx, body, scope.Copy(), baseDir, bodyState)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		iterations++
		if sig == sigBreak {
			break
		}
	}
	if iterations >= in.cfg.WhileLimit {
		in.logger.Warn("while loop stopped at iteration ceiling",
			zap.Int("limit", in.cfg.WhileLimit),
			zap.String("condition", cond))
	}
	return b.String(), nil
}

// bindAssignments evaluates a comma-separated "name = expr" list against
// the outer scope and binds the results into the target scope.
func bindAssignments(raw string, outer, target *Scope) {
	for _, assignment := range strings.Split(raw, ",") {
		name, expr, found := strings.Cut(assignment, "=")
		if !found {
			continue
		}
		value, err := Evaluate(strings.TrimSpace(expr), outer)
		if err != nil {
			value = nil
		}
		target.Set(strings.TrimSpace(name), value)
	}
}

// betweenTags collapses whitespace occurring strictly between two markup
// tag boundaries.
var betweenTags = regexp.MustCompile(`>\s+<`)

func collapseBetweenTags(s string) string {
	return betweenTags.ReplaceAllString(s, "><")
}

// isAutoescapeOn interprets the autoescape block argument.
func isAutoescapeOn(arg string) bool {
	switch strings.ToLower(arg) {
	case AutoescapeOn, AutoescapeTrue, AutoescapeYes:
		return true
	default:
		return false
	}
}

// rawStash protects raw block bodies from every rendering pass. Whole
// raw spans are swapped for opaque sentinels up front and the bodies
// restored at the end of the pipeline. A sentinel inside a loop body may
// surface more than once, so restoration replaces every occurrence.
type rawStash struct {
	bodies []string
}

const rawSentinelFormat = "\x00leantpl:raw:%d\x00"

func (s *rawStash) put(body string) string {
	s.bodies = append(s.bodies, body)
	return fmt.Sprintf(rawSentinelFormat, len(s.bodies)-1)
}

func (s *rawStash) restore(content string) string {
	for i, body := range s.bodies {
		content = strings.ReplaceAll(content, fmt.Sprintf(rawSentinelFormat, i), body)
	}
	return content
}

// reinstate rewraps stashed bodies back into raw blocks. Macro bodies
// outlive the render that collected them, so any sentinel they carry
// must be turned back into directive text before the definition is
// stored.
func (s *rawStash) reinstate(content string) string {
	for i, body := range s.bodies {
		sentinel := fmt.Sprintf(rawSentinelFormat, i)
		content = strings.ReplaceAll(content, sentinel, "{% raw %}"+body+"{% endraw %}")
	}
	return content
}

// stashRawBlocks replaces every raw block span, tags included, with a
// sentinel holding the verbatim body. Unclosed raw blocks run to end of
// input.
func (in *Interpreter) stashRawBlocks(content string, stash *rawStash) string {
	tokens := in.tokenize(content)
	var b strings.Builder
	pos := 0

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.dir.Kind != KindRaw {
			i++
			continue
		}
		end, _ := findBlockEnd(tokens, i, KindRaw, KindEndRaw)
		b.WriteString(content[pos:t.start])
		b.WriteString(stash.put(bodySpan(content, tokens, i, end)))
		pos = spanEnd(content, tokens, end)
		i = after(tokens, end)
	}

	if pos == 0 {
		return content
	}
	b.WriteString(content[pos:])
	return b.String()
}

// processFilters rewrites {{ expr | filter }} expressions. Filters chain
// left-to-right across pipes; colon-separated argument groups apply the
// same filter repeatedly, each group comma-split into arguments. Unknown
// filters and failed evaluations re-emit the original directive text.
func (in *Interpreter) processFilters(content string, scope *Scope) string {
	return in.rec.Pattern(KindFilter).ReplaceAllStringFunc(content, func(match string) string {
		inner := strings.TrimSpace(match[2 : len(match)-2])
		segments := strings.Split(inner, "|")
		if len(segments) < 2 {
			return match
		}

		value, err := Evaluate(strings.TrimSpace(segments[0]), scope)
		if err != nil {
			return match
		}

		for _, segment := range segments[1:] {
			value, err = in.applyFilterSpec(value, strings.TrimSpace(segment))
			if err != nil {
				in.logger.Debug("filter expression fell through",
					zap.String("directive", match),
					zap.Error(err))
				return match
			}
		}
		return anyToString(value)
	})
}

// applyFilterSpec applies one "name[:args[:args...]]" filter spec.
func (in *Interpreter) applyFilterSpec(value any, spec string) (any, error) {
	name, rawArgs, hasArgs := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)

	if !hasArgs {
		return in.filters.Apply(value, name, nil)
	}

	result := value
	for _, group := range strings.Split(rawArgs, ":") {
		args := strings.Split(group, ",")
		for i := range args {
			args[i] = unquoteArg(strings.TrimSpace(args[i]))
		}
		var err error
		result, err = in.filters.Apply(result, name, args)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// unquoteArg strips one layer of matched surrounding quotes from a
// filter argument, leaving bare words untouched.
func unquoteArg(arg string) string {
	if len(arg) >= 2 {
		first, last := arg[0], arg[len(arg)-1]
		if first == last && (first == '\'' || first == '"') {
			return arg[1 : len(arg)-1]
		}
	}
	return arg
}

// replaceVariables substitutes {{ expr }} directives. Unresolved
// expressions keep the original directive text; absent values render as
// the empty string; string values pass through the escaping layer.
func (in *Interpreter) replaceVariables(content string, scope *Scope, st renderState) string {
	return in.rec.Pattern(KindVariable).ReplaceAllStringFunc(content, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])
		value, err := Evaluate(expr, scope)
		if err != nil {
			return match
		}
		return escapeValue(value, st.autoescape)
	})
}

// collectMacros scans for macro definitions, registers them in the
// engine-level registry, and strips the definition spans from the
// content. Definitions persist across renders, so stashed raw spans
// inside a body are reinstated as directive text before it is stored.
func (in *Interpreter) collectMacros(content string, stash *rawStash) string {
	tokens := in.tokenize(content)
	var b strings.Builder
	pos := 0

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.dir.Kind != KindMacro {
			i++
			continue
		}
		end, _ := findBlockEnd(tokens, i, KindMacro, KindEndMacro)
		body := stash.reinstate(bodySpan(content, tokens, i, end))

		params := []string{}
		if raw := strings.TrimSpace(t.dir.Groups[1]); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
		if err := in.macros.Define(t.dir.Groups[0], params, body); err != nil {
			in.logger.Warn("macro definition rejected",
				zap.String("macro", t.dir.Groups[0]),
				zap.Error(err))
		}

		b.WriteString(content[pos:t.start])
		if end < len(tokens) {
			pos = tokens[end].end
		} else {
			pos = len(content)
		}
		i = after(tokens, end)
	}

	if pos == 0 {
		return content
	}
	b.WriteString(content[pos:])
	return b.String()
}

// expandCalls replaces macro invocations with their rendered bodies.
// Invocation binds evaluated positional arguments to parameters in a
// copy of the caller scope, then re-enters content rendering. Unknown
// macros emit a visible placeholder instead of failing.
func (in *Interpreter) expandCalls(ctx context.Context, content string, scope *Scope, baseDir string, st renderState) (string, error) {
	var firstErr error
	out := in.rec.Pattern(KindCall).ReplaceAllStringFunc(content, func(match string) string {
		groups := in.rec.Pattern(KindCall).FindStringSubmatch(match)
		name := groups[1]

		macro, ok := in.macros.Get(name)
		if !ok {
			in.logger.Debug("macro not found", zap.String("macro", name))
			return fmt.Sprintf(PlaceholderMacroNotFound, name)
		}

		macroScope := scope.Copy()
		if rawArgs := strings.TrimSpace(groups[2]); rawArgs != "" {
			args := strings.Split(rawArgs, ",")
			for i, param := range macro.Params {
				if i >= len(args) {
					break
				}
				value, err := Evaluate(strings.TrimSpace(args[i]), scope)
				if err != nil {
					value = nil
				}
				macroScope.Set(param, value)
			}
		}

		macroState := st
		macroState.inLoop = false
		rendered, _, err := in.renderContent(ctx, macro.Body, macroScope, baseDir, macroState)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return rendered
	})
	return out, firstErr
}

// expandIncludes resolves include directives relative to the current
// template's directory and renders them against the current scope, not a
// copy, so included content shares the caller's visible variables.
// Missing targets emit a placeholder comment.
func (in *Interpreter) expandIncludes(ctx context.Context, content string, scope *Scope, baseDir string, st renderState) (string, error) {
	var firstErr error
	out := in.rec.Pattern(KindInclude).ReplaceAllStringFunc(content, func(match string) string {
		groups := in.rec.Pattern(KindInclude).FindStringSubmatch(match)
		name := groups[1]
		fullName := path.Join(baseDir, name)

		source, err := in.load(ctx, fullName)
		if err != nil {
			in.logger.Debug("include not found",
				zap.String("template", fullName),
				zap.Error(err))
			return fmt.Sprintf(PlaceholderIncludeNotFound, name)
		}

		rendered, err := in.renderSource(ctx, source, scope, path.Dir(fullName), st)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return rendered
	})
	return out, firstErr
}
