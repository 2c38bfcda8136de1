package leantpl

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// CachedLoader wraps any Loader with in-memory source caching.
// It caches Load results with configurable TTL and size limits, and
// caches not-found results so repeated misses skip the backend.
type CachedLoader struct {
	loader Loader
	config CacheConfig

	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	closed bool
}

// CacheConfig configures the caching behavior.
type CacheConfig struct {
	// TTL is how long cached entries remain valid.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached templates.
	// When exceeded, oldest entries are evicted.
	// Default: 1000.
	MaxEntries int

	// NegativeCacheTTL is how long to cache "not found" results.
	// Set to 0 to disable negative caching.
	// Default: 30 seconds.
	NegativeCacheTTL time.Duration
}

// DefaultCacheConfig returns the default caching configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:              5 * time.Minute,
		MaxEntries:       1000,
		NegativeCacheTTL: 30 * time.Second,
	}
}

// cacheEntry represents one cached template source. accessedAt holds
// unix nanoseconds and is atomic so cache hits can touch it under the
// read lock.
type cacheEntry struct {
	source     string
	notFound   bool
	cachedAt   time.Time
	accessedAt atomic.Int64
	key        string
}

// NewCachedLoader wraps a loader with caching.
func NewCachedLoader(loader Loader, config CacheConfig) *CachedLoader {
	if config.TTL == 0 {
		config.TTL = 5 * time.Minute
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = 1000
	}

	return &CachedLoader{
		loader: loader,
		config: config,
		cache:  make(map[string]*cacheEntry),
	}
}

// Load returns a template's source, using the cache when available.
func (l *CachedLoader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return "", NewLoaderClosedError()
	}

	entry, ok := l.cache[name]
	if ok && l.isValid(entry) {
		entry.accessedAt.Store(time.Now().UnixNano())
		l.mu.RUnlock()

		if entry.notFound {
			return "", NewLoaderTemplateNotFoundError(name)
		}
		return entry.source, nil
	}
	l.mu.RUnlock()

	// Cache miss - fetch from the backend
	source, err := l.loader.Load(ctx, name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return "", NewLoaderClosedError()
	}

	if err != nil {
		if IsTemplateNotFound(err) && l.config.NegativeCacheTTL > 0 {
			l.addEntry(name, "", true)
		}
		return "", err
	}

	l.addEntry(name, source, false)
	return source, nil
}

// Close closes the cache and the underlying loader.
func (l *CachedLoader) Close() error {
	l.mu.Lock()
	l.closed = true
	l.cache = nil
	l.mu.Unlock()

	return l.loader.Close()
}

// Invalidate removes a template from the cache.
func (l *CachedLoader) Invalidate(name string) {
	l.mu.Lock()
	delete(l.cache, name)
	l.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (l *CachedLoader) InvalidateAll() {
	l.mu.Lock()
	if !l.closed {
		l.cache = make(map[string]*cacheEntry)
	}
	l.mu.Unlock()
}

// Stats returns cache statistics.
func (l *CachedLoader) Stats() CacheStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var validCount, negativeCount int
	for _, entry := range l.cache {
		if l.isValid(entry) {
			if entry.notFound {
				negativeCount++
			} else {
				validCount++
			}
		}
	}

	return CacheStats{
		Entries:         len(l.cache),
		ValidEntries:    validCount,
		NegativeEntries: negativeCount,
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries         int
	ValidEntries    int
	NegativeEntries int
}

// isValid checks if a cache entry is still valid.
func (l *CachedLoader) isValid(entry *cacheEntry) bool {
	ttl := l.config.TTL
	if entry.notFound {
		ttl = l.config.NegativeCacheTTL
	}
	return time.Since(entry.cachedAt) < ttl
}

// addEntry adds an entry to the cache, evicting if necessary.
// Caller must hold write lock.
func (l *CachedLoader) addEntry(name, source string, notFound bool) {
	if len(l.cache) >= l.config.MaxEntries {
		l.evictOldest()
	}

	now := time.Now()
	entry := &cacheEntry{
		source:   source,
		notFound: notFound,
		cachedAt: now,
		key:      name,
	}
	entry.accessedAt.Store(now.UnixNano())
	l.cache[name] = entry
}

// evictOldest removes the oldest accessed entry.
// Caller must hold write lock.
func (l *CachedLoader) evictOldest() {
	var oldest *cacheEntry
	for _, entry := range l.cache {
		if oldest == nil || entry.accessedAt.Load() < oldest.accessedAt.Load() {
			oldest = entry
		}
	}

	if oldest != nil {
		delete(l.cache, oldest.key)
	}
}
