package internal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Path separator for dotted variable lookups.
const PathSeparator = "."

// Scope is the ordered name-to-value binding set visible while rendering
// a region of template text. Loops, macros, with-blocks and conditional
// branches each render against a copy, so mutations inside a block do not
// leak outward; set in the current scope level stays visible to sibling
// directives.
type Scope struct {
	keys   []string
	values map[string]any
}

// NewScope creates a scope from caller-supplied data. The map is copied;
// keys are bound in sorted order so iteration is deterministic.
func NewScope(data map[string]any) *Scope {
	s := &Scope{values: make(map[string]any, len(data))}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.keys = append(s.keys, name)
		s.values[name] = data[name]
	}
	return s
}

// Set binds a name in this scope level, preserving first-insertion order.
func (s *Scope) Set(name string, value any) {
	if _, exists := s.values[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
}

// Get returns the value bound directly to name.
func (s *Scope) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name is bound in this scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	return len(s.keys)
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	names := make([]string, len(s.keys))
	copy(names, s.keys)
	return names
}

// Copy creates the copy-on-branch scope used by loops, macros, with
// blocks and conditional branches. Values are shared, bindings are not.
func (s *Scope) Copy() *Scope {
	clone := &Scope{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]any, len(s.values)),
	}
	copy(clone.keys, s.keys)
	for name, value := range s.values {
		clone.values[name] = value
	}
	return clone
}

// LookupError reports a failed variable-path resolution. Callers convert
// it to fail-open output (the original directive text) rather than
// aborting the render.
type LookupError struct {
	Path string
	Part string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("name %q not found (resolving %q)", e.Part, e.Path)
}

// NewLookupError creates a lookup error for a path and the failing step.
func NewLookupError(path, part string) *LookupError {
	return &LookupError{Path: path, Part: part}
}

// Resolve walks a dotted path through the scope. At each step it tries
// mapping key access, then named-attribute access, then integer-indexed
// access.
func (s *Scope) Resolve(path string) (any, error) {
	parts := strings.Split(path, PathSeparator)

	first := strings.TrimSpace(parts[0])
	current, ok := s.values[first]
	if !ok {
		return nil, NewLookupError(path, first)
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		next, ok := step(current, part)
		if !ok {
			return nil, NewLookupError(path, part)
		}
		current = next
	}
	return current, nil
}

// step resolves one path segment against a value.
func step(value any, part string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		next, ok := v[part]
		return next, ok
	case map[string]string:
		next, ok := v[part]
		return next, ok
	case *Scope:
		return v.Get(part)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		key := reflect.ValueOf(part)
		if !key.Type().AssignableTo(rv.Type().Key()) {
			return nil, false
		}
		next := rv.MapIndex(key)
		if !next.IsValid() {
			return nil, false
		}
		return next.Interface(), true
	case reflect.Struct:
		field := rv.FieldByName(part)
		if field.IsValid() && field.CanInterface() {
			return field.Interface(), true
		}
		// Exported fields are matched case-insensitively so template
		// paths can use lowercase attribute names.
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, part) {
				return rv.Field(i).Interface(), true
			}
		}
		return nil, false
	case reflect.Slice, reflect.Array:
		index, err := strconv.Atoi(part)
		if err != nil || index < 0 || index >= rv.Len() {
			return nil, false
		}
		return rv.Index(index).Interface(), true
	}

	return nil, false
}
