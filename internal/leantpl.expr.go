package internal

import (
	"strconv"
	"strings"
)

// Evaluate parses an expression's text into a value against the scope.
// Recognition order: quoted string, numeric literal, boolean, none/null,
// sequence literal, mapping literal, variable-path lookup. A malformed
// numeric is not an error; it falls through to the lookup attempt.
// Lookup failures return a LookupError which callers convert to
// fail-open output.
func Evaluate(expr string, scope *Scope) (any, error) {
	expr = strings.TrimSpace(expr)

	if len(expr) >= 2 {
		if expr[0] == '"' && expr[len(expr)-1] == '"' {
			return expr[1 : len(expr)-1], nil
		}
		if expr[0] == '\'' && expr[len(expr)-1] == '\'' {
			return expr[1 : len(expr)-1], nil
		}
	}

	if strings.Contains(expr, ".") {
		if f, err := strconv.ParseFloat(expr, FloatBitSize64); err == nil {
			return f, nil
		}
	} else if n, err := strconv.Atoi(expr); err == nil {
		return n, nil
	}

	switch strings.ToLower(expr) {
	case KeywordTrue:
		return true, nil
	case KeywordFalse:
		return false, nil
	case KeywordNone, KeywordNull:
		return nil, nil
	}

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		return evaluateSequenceLiteral(expr, scope)
	}
	if strings.HasPrefix(expr, "{") && strings.HasSuffix(expr, "}") {
		return evaluateMappingLiteral(expr, scope)
	}

	return scope.Resolve(expr)
}

// evaluateSequenceLiteral parses [a, b, c]. Elements are comma-split
// without bracket-depth awareness; templates depend on this exact
// splitting behavior.
func evaluateSequenceLiteral(expr string, scope *Scope) (any, error) {
	inner := strings.TrimSpace(expr[1 : len(expr)-1])
	if inner == "" {
		return []any{}, nil
	}
	parts := strings.Split(inner, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		value, err := Evaluate(strings.TrimSpace(part), scope)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	return items, nil
}

// evaluateMappingLiteral parses {key: value, ...} with the same
// comma-naive splitting as sequence literals. Entries without a colon
// are skipped.
func evaluateMappingLiteral(expr string, scope *Scope) (any, error) {
	inner := strings.TrimSpace(expr[1 : len(expr)-1])
	result := make(map[string]any)
	if inner == "" {
		return result, nil
	}
	for _, part := range strings.Split(inner, ",") {
		key, rawValue, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		value, err := Evaluate(strings.TrimSpace(rawValue), scope)
		if err != nil {
			return nil, err
		}
		result[strings.TrimSpace(key)] = value
	}
	return result, nil
}

// conditionOperators in recognition order. "not in" precedes "in" so the
// longer operator is not shadowed by its substring.
var conditionOperators = []string{"==", "!=", ">=", "<=", ">", "<", " not in ", " in "}

// EvaluateCondition evaluates a condition by textual split on the first
// recognized operator substring. Both sides go through Evaluate; a
// comparison that cannot be performed yields false rather than an error.
// Without an operator the whole expression is a truthiness check.
func EvaluateCondition(cond string, scope *Scope) bool {
	cond = strings.TrimSpace(cond)

	for _, op := range conditionOperators {
		idx := strings.Index(cond, op)
		if idx < 0 {
			continue
		}
		left, lerr := Evaluate(strings.TrimSpace(cond[:idx]), scope)
		right, rerr := Evaluate(strings.TrimSpace(cond[idx+len(op):]), scope)
		if lerr != nil || rerr != nil {
			return false
		}
		return compare(op, left, right)
	}

	value, err := Evaluate(cond, scope)
	if err != nil {
		return false
	}
	return isTruthy(value)
}

// compare applies a binary condition operator with best-effort type
// coercion: when one side is numeric and the other a string, the numeric
// side is coerced to string before comparison.
func compare(op string, left, right any) bool {
	switch op {
	case " in ":
		return contains(right, left)
	case " not in ":
		return !contains(right, left)
	}

	lnum, lok := numericValue(left)
	rnum, rok := numericValue(right)

	if lok && rok {
		return compareFloats(op, lnum, rnum)
	}

	ls, lstr := left.(string)
	rs, rstr := right.(string)
	if lok && rstr {
		ls, lstr = anyToString(left), true
	}
	if rok && lstr {
		rs, rstr = anyToString(right), true
	}
	if lstr && rstr {
		return compareStrings(op, ls, rs)
	}

	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	}
	return false
}

func compareFloats(op string, left, right float64) bool {
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case "<":
		return left < right
	}
	return false
}

func compareStrings(op, left, right string) bool {
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case "<":
		return left < right
	}
	return false
}

// contains implements membership for strings, sequences and mappings.
func contains(container, item any) bool {
	switch c := container.(type) {
	case string:
		return strings.Contains(c, anyToString(item))
	case SafeString:
		return strings.Contains(string(c), anyToString(item))
	case map[string]any:
		_, ok := c[anyToString(item)]
		return ok
	}
	if items, ok := asSequence(container); ok {
		for _, candidate := range items {
			if candidate == item {
				return true
			}
			ln, lok := numericValue(candidate)
			rn, rok := numericValue(item)
			if lok && rok && ln == rn {
				return true
			}
		}
	}
	return false
}
