package leantpl

import (
	"context"
	"sync"
)

// HookPoint identifies when a hook is called during rendering.
type HookPoint string

// Hook points for the render lifecycle.
const (
	// HookBeforeRender is called before a template renders. An error
	// from a before hook aborts the render.
	HookBeforeRender HookPoint = "before_render"

	// HookAfterRender is called after rendering (success or failure).
	// Errors from after hooks are logged but don't affect the result.
	HookAfterRender HookPoint = "after_render"
)

// Hook is a function called at specific points during rendering.
// Return an error from a "before" hook to abort the render.
type Hook func(ctx context.Context, point HookPoint, data *HookData) error

// HookData carries context information to hooks.
type HookData struct {
	// TemplateName is the name of the template being rendered.
	// Empty for RenderString.
	TemplateName string

	// Data is the context map passed to the render.
	Data map[string]any

	// Result is the rendered output (for after_render, may be empty
	// on error).
	Result string

	// Error is any error that occurred (for after_render).
	Error error

	// Metadata allows hooks to pass data to each other.
	Metadata map[string]any
}

// NewHookData creates a new HookData for a render.
func NewHookData(templateName string, data map[string]any) *HookData {
	return &HookData{
		TemplateName: templateName,
		Data:         data,
		Metadata:     make(map[string]any),
	}
}

// WithResult sets the rendered output.
func (d *HookData) WithResult(result string) *HookData {
	d.Result = result
	return d
}

// WithError sets the error.
func (d *HookData) WithError(err error) *HookData {
	d.Error = err
	return d
}

// SetMetadata sets a metadata value.
func (d *HookData) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// GetMetadata gets a metadata value.
func (d *HookData) GetMetadata(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// HookRegistry manages hook registration and execution.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the specified point.
func (r *HookRegistry) Register(point HookPoint, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[point] = append(r.hooks[point], hook)
}

// Clear removes all hooks for a specific point.
func (r *HookRegistry) Clear(point HookPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, point)
}

// ClearAll removes all hooks.
func (r *HookRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = make(map[HookPoint][]Hook)
}

// Run executes all hooks for the specified point.
// For before hooks, the first error stops execution and is returned.
// For after hooks, all hooks run; errors are left to the caller to log.
func (r *HookRegistry) Run(ctx context.Context, point HookPoint, data *HookData) error {
	r.mu.RLock()
	hooks := r.hooks[point]
	r.mu.RUnlock()

	if len(hooks) == 0 {
		return nil
	}

	isBefore := point == HookBeforeRender

	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil && isBefore {
			return err
		}
	}
	return nil
}

// Count returns the number of hooks registered for a point.
func (r *HookRegistry) Count(point HookPoint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[point])
}

// HasHooks checks if any hooks are registered for a point.
func (r *HookRegistry) HasHooks(point HookPoint) bool {
	return r.Count(point) > 0
}

// Sanitizer post-processes a fully rendered document. When the
// sanitizer returns an error the unsanitized text is kept, so a broken
// sanitizer degrades output instead of failing the render.
type Sanitizer func(rendered string) (string, error)
