package internal

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"
)

// maxExtendsDepth caps extends chain resolution so cyclic chains
// terminate.
const maxExtendsDepth = 16

// renderWithInheritance resolves an extends chain iteratively: block
// overrides are collected walking up the chain, child-most definition
// winning, then spliced into the chain's root and rendered as an
// ordinary template rooted at that template's directory. Collecting
// before splicing keeps a leaf override alive even when an intermediate
// template never mentions that block. A missing parent ends the walk
// and the current level renders standalone with the overrides gathered
// so far.
func (in *Interpreter) renderWithInheritance(ctx context.Context, child string, scope *Scope, baseDir string, st renderState) (string, error) {
	overrides := make(map[string]string)
	current := child
	dir := baseDir

	for depth := 0; depth < maxExtendsDepth; depth++ {
		m := in.rec.Pattern(KindExtends).FindStringSubmatch(current)
		if m == nil {
			break
		}
		for name, body := range in.extractBlocks(current) {
			if _, ok := overrides[name]; !ok {
				overrides[name] = body
			}
		}

		parentPath := path.Join(dir, m[1])
		parent, err := in.load(ctx, parentPath)
		if err != nil {
			in.logger.Warn("parent template not found, rendering child standalone",
				zap.String("parent", parentPath),
				zap.Error(err))
			current = in.rec.Pattern(KindExtends).ReplaceAllString(current, "")
			break
		}
		current = parent
		dir = path.Dir(parentPath)
	}

	merged := in.spliceBlocks(current, overrides)
	out, _, err := in.renderContent(ctx, merged, scope, dir, st)
	return out, err
}

// extractBlocks collects the top-level named block bodies of a template.
// Nested blocks stay inside their enclosing block's body.
func (in *Interpreter) extractBlocks(source string) map[string]string {
	blocks := make(map[string]string)
	tokens := in.tokenize(source)

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.dir.Kind != KindBlockDef {
			i++
			continue
		}
		end, _ := findBlockEnd(tokens, i, KindBlockDef, KindEndBlock)
		blocks[t.dir.Groups[0]] = bodySpan(source, tokens, i, end)
		i = after(tokens, end)
	}
	return blocks
}

// spliceBlocks rewrites the parent template: each top-level block body
// is replaced by the child's override when present and kept as the
// parent's own default otherwise. The block markers stay in place, so
// when the parent itself extends another template the merged text still
// carries its overrides into the next round of resolution. The markers
// render as nothing once the chain bottoms out.
func (in *Interpreter) spliceBlocks(parent string, overrides map[string]string) string {
	tokens := in.tokenize(parent)
	var b strings.Builder
	pos := 0

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.dir.Kind != KindBlockDef {
			i++
			continue
		}
		end, _ := findBlockEnd(tokens, i, KindBlockDef, KindEndBlock)

		b.WriteString(parent[pos:t.end])
		if body, ok := overrides[t.dir.Groups[0]]; ok {
			b.WriteString(body)
		} else {
			b.WriteString(bodySpan(parent, tokens, i, end))
		}
		if end < len(tokens) {
			b.WriteString(parent[tokens[end].start:tokens[end].end])
		}

		pos = spanEnd(parent, tokens, end)
		i = after(tokens, end)
	}

	b.WriteString(parent[pos:])
	return b.String()
}
