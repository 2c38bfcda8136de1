package internal

import (
	"fmt"
	"sync"
)

// FilterFunc transforms a value, optionally using string arguments taken
// from the template's colon-separated argument syntax.
type FilterFunc func(value any, args []string) (any, error)

// FilterRegistry manages named filters. A filter name is unique within
// the registry; registering an existing name replaces the previous
// filter (last registration wins).
type FilterRegistry struct {
	mu      sync.RWMutex
	filters map[string]FilterFunc
}

// NewFilterRegistry creates an empty filter registry.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		filters: make(map[string]FilterFunc),
	}
}

// Register adds or replaces a filter.
func (r *FilterRegistry) Register(name string, fn FilterFunc) {
	if name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = fn
}

// Get retrieves a filter by name.
func (r *FilterRegistry) Get(name string) (FilterFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.filters[name]
	return fn, ok
}

// Has checks if a filter is registered.
func (r *FilterRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Apply runs a named filter over a value.
func (r *FilterRegistry) Apply(value any, name string, args []string) (any, error) {
	fn, ok := r.Get(name)
	if !ok {
		return nil, NewUnknownFilterError(name)
	}
	return fn(value, args)
}

// List returns all registered filter names.
func (r *FilterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered filters.
func (r *FilterRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters)
}

// Filter error messages.
const (
	ErrMsgFilterNotFound = "filter not found"
	ErrMsgFilterFailed   = "filter execution failed"
)

// FilterError represents a filter-related error. The interpreter treats
// it as fail-open: the original directive text is re-emitted.
type FilterError struct {
	Message    string
	FilterName string
	Cause      error
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.FilterName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.FilterName)
}

// Unwrap returns the underlying error.
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// NewUnknownFilterError creates an error for an unregistered filter name.
func NewUnknownFilterError(name string) *FilterError {
	return &FilterError{Message: ErrMsgFilterNotFound, FilterName: name}
}

// NewFilterExecError creates an error for a failed filter invocation.
func NewFilterExecError(name string, cause error) *FilterError {
	return &FilterError{Message: ErrMsgFilterFailed, FilterName: name, Cause: cause}
}

// RegisterBuiltinFilters registers the built-in filter catalog.
func RegisterBuiltinFilters(r *FilterRegistry) {
	registerStringFilters(r)
	registerSequenceFilters(r)
	registerNumericFilters(r)
	registerDateTimeFilters(r)
	registerTypeFilters(r)
}
