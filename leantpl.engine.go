package leantpl

import (
	"context"
	"path"

	"github.com/leantpl/leantpl/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point for the leantpl templating system.
// It owns the directive recognizer, filter and macro registries, the
// loader (with optional source caching), hooks, and the interpreter.
// An Engine is safe for concurrent use.
type Engine struct {
	filters *internal.FilterRegistry
	macros  *internal.MacroRegistry
	interp  *internal.Interpreter
	loader  Loader
	cache   *CachedLoader
	hooks   *HookRegistry
	config  *engineConfig
	logger  *zap.Logger
}

// New creates a new leantpl Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	filters := internal.NewFilterRegistry()
	internal.RegisterBuiltinFilters(filters)
	macros := internal.NewMacroRegistry()

	e := &Engine{
		filters: filters,
		macros:  macros,
		hooks:   NewHookRegistry(),
		config:  config,
		logger:  logger,
	}

	if config.loader != nil {
		e.loader = config.loader
		if !config.cacheDisabled {
			e.cache = NewCachedLoader(config.loader, config.cacheConfig)
			e.loader = e.cache
		}
	}

	interpConfig := internal.Config{
		Autoescape: config.autoescape,
		WhileLimit: config.whileLimit,
	}
	e.interp = internal.NewInterpreter(
		internal.NewRecognizer(),
		filters,
		macros,
		e.loadSource,
		interpConfig,
		logger,
	)

	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// loadSource is the interpreter's LoadFunc. Includes and extends
// resolution come through here, so a missing sub-template surfaces as a
// loader error the interpreter downgrades to a placeholder.
func (e *Engine) loadSource(ctx context.Context, name string) (string, error) {
	if e.loader == nil {
		return "", NewLoaderTemplateNotFoundError(name)
	}
	return e.loader.Load(ctx, name)
}

// Render loads a template by name and renders it against data. The
// template name is a slash-separated path; includes and extends inside
// it resolve relative to its directory.
//
// A missing or unloadable top-level template is the only hard failure;
// everything below it degrades per directive.
func (e *Engine) Render(ctx context.Context, name string, data map[string]any) (string, error) {
	if e.loader == nil {
		return "", NewNoLoaderError(name)
	}

	hookData := NewHookData(name, data)
	if err := e.hooks.Run(ctx, HookBeforeRender, hookData); err != nil {
		return "", NewRenderAbortedError(name, err)
	}

	source, err := e.loader.Load(ctx, name)
	if err != nil {
		e.runAfterHooks(ctx, hookData.WithError(err))
		return "", NewTemplateNotFoundError(name, err)
	}

	result, err := e.renderSource(ctx, source, data, path.Dir(name))
	e.runAfterHooks(ctx, hookData.WithResult(result).WithError(err))
	return result, err
}

// RenderString renders template source directly against data. Includes
// and extends resolve relative to the loader root.
func (e *Engine) RenderString(ctx context.Context, source string, data map[string]any) (string, error) {
	hookData := NewHookData("", data)
	if err := e.hooks.Run(ctx, HookBeforeRender, hookData); err != nil {
		return "", NewRenderAbortedError("", err)
	}

	result, err := e.renderSource(ctx, source, data, ".")
	e.runAfterHooks(ctx, hookData.WithResult(result).WithError(err))
	return result, err
}

// renderSource runs the interpreter and the optional sanitizer.
func (e *Engine) renderSource(ctx context.Context, source string, data map[string]any, baseDir string) (string, error) {
	scope := internal.NewScope(data)
	result, err := e.interp.Render(ctx, source, scope, baseDir)
	if err != nil {
		return "", err
	}

	if e.config.sanitizer != nil {
		sanitized, serr := e.config.sanitizer(result)
		if serr != nil {
			e.logger.Warn("sanitizer failed, keeping unsanitized output",
				zap.Error(serr))
			return result, nil
		}
		return sanitized, nil
	}
	return result, nil
}

// runAfterHooks runs the after-render hooks, logging failures.
func (e *Engine) runAfterHooks(ctx context.Context, data *HookData) {
	if !e.hooks.HasHooks(HookAfterRender) {
		return
	}
	if err := e.hooks.Run(ctx, HookAfterRender, data); err != nil {
		e.logger.Warn("after-render hook failed",
			zap.String(MetaKeyTemplate, data.TemplateName),
			zap.Error(err))
	}
}

// AddFilter registers a custom filter. Registering an existing name
// replaces the previous filter, built-ins included.
func (e *Engine) AddFilter(name string, fn FilterFunc) {
	e.filters.Register(name, fn)
}

// HasFilter checks if a filter is registered.
func (e *Engine) HasFilter(name string) bool {
	return e.filters.Has(name)
}

// ListFilters returns all registered filter names.
func (e *Engine) ListFilters() []string {
	return e.filters.List()
}

// AddMacro registers a macro programmatically, equivalent to a
// {% macro %} definition in template text. Redefinition replaces the
// previous body.
func (e *Engine) AddMacro(name string, params []string, body string) error {
	return e.macros.Define(name, params, body)
}

// HasMacro checks if a macro is defined.
func (e *Engine) HasMacro(name string) bool {
	return e.macros.Has(name)
}

// ListMacros returns all defined macro names in sorted order.
func (e *Engine) ListMacros() []string {
	return e.macros.List()
}

// ClearCache drops all cached template sources. It is a no-op when
// caching is disabled or no loader is configured.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

// CacheStats returns source cache statistics. The zero value is
// returned when caching is disabled.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.Stats()
}

// Preload warms the source cache with the named templates. Failures are
// logged and skipped; the number of successfully loaded templates is
// returned.
func (e *Engine) Preload(ctx context.Context, names ...string) int {
	if e.loader == nil {
		return 0
	}

	loaded := 0
	for _, name := range names {
		if _, err := e.loader.Load(ctx, name); err != nil {
			e.logger.Warn("preload skipped template",
				zap.String(MetaKeyTemplate, name),
				zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded
}

// Validate checks template source for structural problems without
// rendering it. Rendering tolerates everything Validate reports; the
// diagnostics exist for template authors.
func (e *Engine) Validate(source string) []ValidationIssue {
	return e.interp.ValidateSource(source)
}

// Hooks returns the engine's hook registry.
func (e *Engine) Hooks() *HookRegistry {
	return e.hooks
}

// Close releases the engine's loader resources.
func (e *Engine) Close() error {
	if e.loader != nil {
		return e.loader.Close()
	}
	return nil
}
