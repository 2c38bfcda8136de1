package leantpl

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	loader        Loader
	autoescape    bool
	whileLimit    int
	sanitizer     Sanitizer
	cacheConfig   CacheConfig
	cacheDisabled bool
	logger        *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		autoescape:  DefaultAutoescape,
		whileLimit:  DefaultWhileLimit,
		cacheConfig: DefaultCacheConfig(),
		logger:      nil,
	}
}

// WithLoader sets the template loader used by Render, include, and
// extends resolution. Without a loader, only RenderString works.
func WithLoader(loader Loader) Option {
	return func(c *engineConfig) {
		c.loader = loader
	}
}

// WithAutoescape sets the default HTML escaping behavior for
// interpolated strings. Templates can override it per block.
// Default: true
func WithAutoescape(enabled bool) Option {
	return func(c *engineConfig) {
		c.autoescape = enabled
	}
}

// WithWhileLimit sets the iteration ceiling for while loops.
// Values below 1 are ignored.
// Default: 1000
func WithWhileLimit(limit int) Option {
	return func(c *engineConfig) {
		if limit > 0 {
			c.whileLimit = limit
		}
	}
}

// WithSanitizer sets a post-render sanitizer. A sanitizer error keeps
// the unsanitized output.
// Default: none
func WithSanitizer(s Sanitizer) Option {
	return func(c *engineConfig) {
		c.sanitizer = s
	}
}

// WithCacheConfig sets the source cache configuration for the engine's
// loader.
func WithCacheConfig(config CacheConfig) Option {
	return func(c *engineConfig) {
		c.cacheConfig = config
	}
}

// WithCacheDisabled turns off source caching; every load hits the
// loader backend.
func WithCacheDisabled() Option {
	return func(c *engineConfig) {
		c.cacheDisabled = true
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
