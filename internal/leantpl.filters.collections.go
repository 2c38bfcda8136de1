package internal

import (
	"sort"
	"strconv"
	"strings"
)

// Sequence filter name constants
const (
	FilterNameLength  = "length"
	FilterNameFirst   = "first"
	FilterNameLast    = "last"
	FilterNameJoin    = "join"
	FilterNameReverse = "reverse"
	FilterNameSort    = "sort"
	FilterNameUnique  = "unique"
	FilterNameSlice   = "slice"
	FilterNameDefault = "default"
	FilterNameDefaultAlt = "d"
)

// Default join separator, matching the catalog's historical behavior.
const defaultJoinSeparator = ", "

// registerSequenceFilters registers sequence and default filters.
func registerSequenceFilters(r *FilterRegistry) {
	r.Register(FilterNameLength, func(value any, args []string) (any, error) {
		return sequenceLen(value), nil
	})

	r.Register(FilterNameFirst, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok || len(items) == 0 {
			return nil, nil
		}
		return items[0], nil
	})

	r.Register(FilterNameLast, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok || len(items) == 0 {
			return nil, nil
		}
		return items[len(items)-1], nil
	})

	r.Register(FilterNameJoin, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok {
			return anyToString(value), nil
		}
		sep := defaultJoinSeparator
		if len(args) > 0 {
			sep = args[0]
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = anyToString(item)
		}
		return strings.Join(parts, sep), nil
	})

	r.Register(FilterNameReverse, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok {
			return value, nil
		}
		reversed := make([]any, len(items))
		for i, item := range items {
			reversed[len(items)-1-i] = item
		}
		return reversed, nil
	})

	r.Register(FilterNameSort, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok {
			return value, nil
		}
		descending := len(args) > 0 && strings.EqualFold(args[0], StringValueTrue)
		sorted := make([]any, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			less := lessValues(sorted[i], sorted[j])
			if descending {
				return !less
			}
			return less
		})
		return sorted, nil
	})

	r.Register(FilterNameUnique, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok {
			return value, nil
		}
		seen := make(map[string]bool, len(items))
		unique := make([]any, 0, len(items))
		for _, item := range items {
			key := anyToString(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			unique = append(unique, item)
		}
		return unique, nil
	})

	// slice(start[, end]) applies sequence slicing with the usual
	// clamping rules; out-of-range arguments are tolerated.
	r.Register(FilterNameSlice, func(value any, args []string) (any, error) {
		items, ok := asSequence(value)
		if !ok {
			return value, nil
		}
		start := 0
		end := len(items)
		if len(args) > 0 {
			if n, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil {
				start = n
			}
		}
		if len(args) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(args[1])); err == nil {
				end = n
			}
		}
		if start < 0 {
			start = 0
		}
		if end > len(items) {
			end = len(items)
		}
		if start > end {
			return []any{}, nil
		}
		return items[start:end], nil
	})

	// default substitutes a fallback when the value is absent.
	defaultFilter := func(value any, args []string) (any, error) {
		if value != nil {
			return value, nil
		}
		if len(args) > 0 {
			return args[0], nil
		}
		return StringValueEmpty, nil
	}
	r.Register(FilterNameDefault, defaultFilter)
	r.Register(FilterNameDefaultAlt, defaultFilter)
}

// lessValues orders two values numerically when possible, by rendered
// string otherwise.
func lessValues(a, b any) bool {
	an, aok := numericValue(a)
	bn, bok := numericValue(b)
	if aok && bok {
		return an < bn
	}
	return anyToString(a) < anyToString(b)
}
