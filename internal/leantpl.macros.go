package internal

import (
	"fmt"
	"sort"
	"sync"
)

// Macro is a stored macro definition: an ordered parameter list and the
// body text rendered when the macro is called.
type Macro struct {
	Name   string
	Params []string
	Body   string
}

// MacroRegistry stores macro definitions for the lifetime of an engine
// instance. Definitions come from explicit registration or from the
// first-pass scan of a render; redefining a name replaces the previous
// definition.
type MacroRegistry struct {
	mu     sync.RWMutex
	macros map[string]*Macro
}

// NewMacroRegistry creates an empty macro registry.
func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{
		macros: make(map[string]*Macro),
	}
}

// Define adds or replaces a macro definition.
func (r *MacroRegistry) Define(name string, params []string, body string) error {
	if name == "" {
		return NewMacroError(ErrMsgMacroEmptyName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.macros[name] = &Macro{Name: name, Params: params, Body: body}
	return nil
}

// Get retrieves a macro by name.
func (r *MacroRegistry) Get(name string) (*Macro, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.macros[name]
	return m, ok
}

// Has checks whether a macro is defined.
func (r *MacroRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all defined macro names in sorted order.
func (r *MacroRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of defined macros.
func (r *MacroRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.macros)
}

// Macro error messages.
const (
	ErrMsgMacroEmptyName = "macro name cannot be empty"
	ErrMsgMacroNotFound  = "macro not found"
)

// MacroError represents a macro-related error.
type MacroError struct {
	Message   string
	MacroName string
}

// Error implements the error interface.
func (e *MacroError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.MacroName)
}

// NewMacroError creates a macro error.
func NewMacroError(message, name string) *MacroError {
	return &MacroError{Message: message, MacroName: name}
}
