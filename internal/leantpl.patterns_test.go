package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizerClassify(t *testing.T) {
	rec := NewRecognizer()

	tests := []struct {
		name   string
		tag    string
		kind   Kind
		groups []string
	}{
		{"if", "{% if user.age >= 18 %}", KindIf, []string{"user.age >= 18"}},
		{"elif", "{% elif x == 2 %}", KindElif, []string{"x == 2"}},
		{"else", "{% else %}", KindElse, nil},
		{"endif", "{% endif %}", KindEndIf, nil},
		{"for", "{% for item in items %}", KindFor, []string{"item", "items", ""}},
		{"for with unpacking", "{% for k, v in pairs %}", KindFor, []string{"k, v", "pairs", ""}},
		{"for with filter clause", "{% for n in nums if n > 2 %}", KindFor, []string{"n", "nums", "n > 2"}},
		{"while", "{% while count < 10 %}", KindWhile, []string{"count < 10"}},
		{"set", "{% set total = price %}", KindSet, []string{"total", "price"}},
		{"include", `{% include "partials/head.html" %}`, KindInclude, []string{"partials/head.html"}},
		{"extends", `{% extends 'base.html' %}`, KindExtends, []string{"base.html"}},
		{"block", "{% block content %}", KindBlockDef, []string{"content"}},
		{"endblock", "{% endblock %}", KindEndBlock, nil},
		{"macro", "{% macro greet(name, tone) %}", KindMacro, []string{"greet", "name, tone"}},
		{"call", `{% call greet("Bo") %}`, KindCall, []string{"greet", `"Bo"`}},
		{"raw", "{% raw %}", KindRaw, nil},
		{"with", "{% with a = 1, b = 2 %}", KindWith, []string{"a = 1, b = 2"}},
		{"spaceless", "{% spaceless %}", KindSpaceless, nil},
		{"autoescape", "{% autoescape off %}", KindAutoescape, []string{"off"}},
		{"break", "{% break %}", KindBreak, nil},
		{"continue", "{% continue %}", KindContinue, nil},
		{"load", `{% load "library" %}`, KindLoad, []string{"library"}},
		{"unknown tag is literal", "{% frobnicate %}", KindLiteral, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := rec.Classify(tt.tag)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.tag, d.Raw)
			for i, want := range tt.groups {
				require.Less(t, i, len(d.Groups))
				assert.Equal(t, want, d.Groups[i])
			}
		})
	}
}

func TestRecognizerElifDoesNotMatchIf(t *testing.T) {
	rec := NewRecognizer()

	// "elif" contains "if" but must never be classified as an if-open.
	d := rec.Classify("{% elif x %}")
	assert.Equal(t, KindElif, d.Kind)
}

func TestRecognizerTags(t *testing.T) {
	rec := NewRecognizer()

	spans := rec.Tags().FindAllString("a {% if x %}b{% endif %} c {{ v }}", -1)
	assert.Equal(t, []string{"{% if x %}", "{% endif %}"}, spans)
}

func TestRecognizerPatternScanning(t *testing.T) {
	rec := NewRecognizer()

	content := `x {{ a | upper }} y {{ b }} z`
	assert.Equal(t, 1, len(rec.Pattern(KindFilter).FindAllString(content, -1)))
	assert.Equal(t, 2, len(rec.Pattern(KindVariable).FindAllString(content, -1)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "for", KindFor.String())
	assert.Equal(t, "endautoescape", KindEndAutoescape.String())
	assert.Equal(t, "literal", Kind(-1).String())
}
