package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLiterals(t *testing.T) {
	s := NewScope(map[string]any{"name": "Ada", "n": 7})

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"double-quoted string", `"hello"`, "hello"},
		{"single-quoted string", `'hi there'`, "hi there"},
		{"quoted digits stay string", `"42"`, "42"},
		{"integer", "42", 42},
		{"negative integer", "-3", -3},
		{"float", "3.14", 3.14},
		{"true", "true", true},
		{"True case-insensitive", "True", true},
		{"false", "FALSE", false},
		{"none", "none", nil},
		{"null", "null", nil},
		{"empty list", "[]", []any{}},
		{"list of mixed literals", `[1, 'a', true]`, []any{1, "a", true}},
		{"list with lookups", "[n, name]", []any{7, "Ada"}},
		{"empty map", "{}", map[string]any{}},
		{"map literal", "{a: 1, b: 'x'}", map[string]any{"a": 1, "b": "x"}},
		{"variable lookup", "name", "Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed numeric falls through to lookup", func(t *testing.T) {
		s := NewScope(map[string]any{"1x": "bound"})
		got, err := Evaluate("1x", s)
		require.NoError(t, err)
		assert.Equal(t, "bound", got)
	})

	t.Run("unbound name errors", func(t *testing.T) {
		_, err := Evaluate("ghost", s)
		require.Error(t, err)
		assert.IsType(t, &LookupError{}, err)
	})
}

func TestEvaluateCondition(t *testing.T) {
	s := NewScope(map[string]any{
		"age":   16,
		"name":  "ada",
		"tags":  []any{"a", "b"},
		"empty": []any{},
		"level": "3",
	})

	tests := []struct {
		name string
		cond string
		want bool
	}{
		{"numeric compare", "age >= 18", false},
		{"numeric compare true", "age < 18", true},
		{"equality", "age == 16", true},
		{"inequality", "age != 16", false},
		{"string equality", "name == 'ada'", true},
		{"numeric coerced to string", "level == '3'", true},
		{"membership", "'a' in tags", true},
		{"membership miss", "'z' in tags", false},
		{"negated membership", "'z' not in tags", true},
		{"substring membership", "'da' in name", true},
		{"truthiness value", "name", true},
		{"truthiness empty sequence", "empty", false},
		{"truthiness missing name", "ghost", false},
		{"unresolvable comparison", "ghost > 3", false},
		{"uncomparable types", "tags > 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, s))
		})
	}
}

func TestCompareCoercion(t *testing.T) {
	assert.True(t, compare("==", 3, "3"))
	assert.True(t, compare("!=", 3, "4"))
	assert.True(t, compare("<", 2, 10))
	assert.False(t, compare("<", "2", "10")) // string compare, not numeric
	assert.True(t, compare(" in ", 2, []any{1, 2}))
	assert.True(t, compare(" not in ", 5, []any{1, 2}))
}
