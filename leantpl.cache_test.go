package leantpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader wraps a loader and counts backend hits.
type countingLoader struct {
	Loader

	mu    sync.Mutex
	loads int
}

func (l *countingLoader) Load(ctx context.Context, name string) (string, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()
	return l.Loader.Load(ctx, name)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

func newCountingLoader(templates map[string]string) *countingLoader {
	return &countingLoader{Loader: NewMapLoader(templates)}
}

func TestCachedLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("second load hits the cache", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"t.html": "cached"})
		cached := NewCachedLoader(backend, DefaultCacheConfig())
		defer func() { _ = cached.Close() }()

		for i := 0; i < 3; i++ {
			source, err := cached.Load(ctx, "t.html")
			require.NoError(t, err)
			assert.Equal(t, "cached", source)
		}
		assert.Equal(t, 1, backend.count())
	})

	t.Run("expired entries refetch", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"t.html": "v"})
		cached := NewCachedLoader(backend, CacheConfig{TTL: time.Millisecond, MaxEntries: 10})
		defer func() { _ = cached.Close() }()

		_, err := cached.Load(ctx, "t.html")
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = cached.Load(ctx, "t.html")
		require.NoError(t, err)
		assert.Equal(t, 2, backend.count())
	})

	t.Run("negative caching absorbs repeated misses", func(t *testing.T) {
		backend := newCountingLoader(nil)
		cached := NewCachedLoader(backend, DefaultCacheConfig())
		defer func() { _ = cached.Close() }()

		for i := 0; i < 3; i++ {
			_, err := cached.Load(ctx, "ghost.html")
			require.Error(t, err)
			assert.True(t, IsTemplateNotFound(err))
		}
		assert.Equal(t, 1, backend.count())
		assert.Equal(t, 1, cached.Stats().NegativeEntries)
	})

	t.Run("negative caching disabled", func(t *testing.T) {
		backend := newCountingLoader(nil)
		cached := NewCachedLoader(backend, CacheConfig{TTL: time.Minute, MaxEntries: 10})
		defer func() { _ = cached.Close() }()

		for i := 0; i < 3; i++ {
			_, err := cached.Load(ctx, "ghost.html")
			require.Error(t, err)
		}
		assert.Equal(t, 3, backend.count())
	})

	t.Run("invalidate drops a single entry", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"a.html": "a", "b.html": "b"})
		cached := NewCachedLoader(backend, DefaultCacheConfig())
		defer func() { _ = cached.Close() }()

		_, _ = cached.Load(ctx, "a.html")
		_, _ = cached.Load(ctx, "b.html")
		cached.Invalidate("a.html")

		_, _ = cached.Load(ctx, "a.html")
		_, _ = cached.Load(ctx, "b.html")
		assert.Equal(t, 3, backend.count())
	})

	t.Run("invalidate all", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"a.html": "a"})
		cached := NewCachedLoader(backend, DefaultCacheConfig())
		defer func() { _ = cached.Close() }()

		_, _ = cached.Load(ctx, "a.html")
		cached.InvalidateAll()
		assert.Equal(t, 0, cached.Stats().Entries)

		_, _ = cached.Load(ctx, "a.html")
		assert.Equal(t, 2, backend.count())
	})

	t.Run("eviction keeps the cache bounded", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{
			"a.html": "a", "b.html": "b", "c.html": "c",
		})
		cached := NewCachedLoader(backend, CacheConfig{TTL: time.Minute, MaxEntries: 2})
		defer func() { _ = cached.Close() }()

		_, _ = cached.Load(ctx, "a.html")
		_, _ = cached.Load(ctx, "b.html")
		_, _ = cached.Load(ctx, "c.html")
		assert.Equal(t, 2, cached.Stats().Entries)
	})

	t.Run("stats distinguish valid and negative entries", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"a.html": "a"})
		cached := NewCachedLoader(backend, DefaultCacheConfig())
		defer func() { _ = cached.Close() }()

		_, _ = cached.Load(ctx, "a.html")
		_, _ = cached.Load(ctx, "ghost.html")

		stats := cached.Stats()
		assert.Equal(t, 2, stats.Entries)
		assert.Equal(t, 1, stats.ValidEntries)
		assert.Equal(t, 1, stats.NegativeEntries)
	})

	t.Run("closed cache refuses loads and closes the backend", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"a.html": "a"})
		cached := NewCachedLoader(backend, DefaultCacheConfig())

		require.NoError(t, cached.Close())
		_, err := cached.Load(ctx, "a.html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderClosed)

		_, err = backend.Loader.Load(ctx, "a.html")
		assert.Contains(t, err.Error(), ErrMsgLoaderClosed)
	})

	t.Run("concurrent hits on one entry", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"t.html": "shared"})
		cached := NewCachedLoader(backend, CacheConfig{TTL: time.Minute, MaxEntries: 2})
		defer func() { _ = cached.Close() }()

		_, err := cached.Load(ctx, "t.html")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				source, err := cached.Load(ctx, "t.html")
				assert.NoError(t, err)
				assert.Equal(t, "shared", source)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, backend.count())
	})

	t.Run("zero config gets defaults", func(t *testing.T) {
		backend := newCountingLoader(map[string]string{"a.html": "a"})
		cached := NewCachedLoader(backend, CacheConfig{})
		defer func() { _ = cached.Close() }()

		_, _ = cached.Load(ctx, "a.html")
		_, _ = cached.Load(ctx, "a.html")
		assert.Equal(t, 1, backend.count())
	})
}
