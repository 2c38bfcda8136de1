//go:build integration

package leantpl

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresLoader, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("leantpl_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	loader, err := NewPostgresLoader(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres loader")

	cleanup := func() {
		if loader != nil {
			_ = loader.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return loader, cleanup
}

func TestPostgres_E2E_BasicCRUD(t *testing.T) {
	loader, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		err := loader.Save(ctx, "greeting.html", "Hello {{ name }}!")
		require.NoError(t, err)
	})

	t.Run("Load", func(t *testing.T) {
		source, err := loader.Load(ctx, "greeting.html")
		require.NoError(t, err)
		assert.Equal(t, "Hello {{ name }}!", source)
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		require.NoError(t, loader.Save(ctx, "greeting.html", "Hi {{ name }}!"))

		source, err := loader.Load(ctx, "greeting.html")
		require.NoError(t, err)
		assert.Equal(t, "Hi {{ name }}!", source)
	})

	t.Run("LoadNotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "nonexistent.html")
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, loader.Save(ctx, "a.html", "a"))
		require.NoError(t, loader.Save(ctx, "b.html", "b"))

		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.html", "b.html", "greeting.html"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, loader.Delete(ctx, "a.html"))

		_, err := loader.Load(ctx, "a.html")
		assert.True(t, IsTemplateNotFound(err))
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		err := loader.Delete(ctx, "a.html")
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))
	})
}

func TestPostgres_E2E_EngineIntegration(t *testing.T) {
	loader, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, loader.Save(ctx, "shared/base.html", "<{% block main %}{% endblock %}>"))
	require.NoError(t, loader.Save(ctx, "shared/page.html",
		"{% extends 'base.html' %}{% block main %}{{ title|upper }}{% endblock %}"))

	engine, err := New(WithLoader(loader))
	require.NoError(t, err)

	out, err := engine.Render(ctx, "shared/page.html", map[string]any{"title": "news"})
	require.NoError(t, err)
	assert.Equal(t, "<NEWS>", out)
}

func TestPostgres_E2E_ConcurrentAccess(t *testing.T) {
	loader, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("tmpl-%d.html", n)
			if err := loader.Save(ctx, name, fmt.Sprintf("worker %d", n)); err != nil {
				errs <- err
				return
			}
			if _, err := loader.Load(ctx, name); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, workers)
}

func TestPostgres_E2E_ClosedLoader(t *testing.T) {
	loader, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, loader.Close())
	require.NoError(t, loader.Close())

	_, err := loader.Load(ctx, "any.html")
	assert.Contains(t, err.Error(), ErrMsgLoaderClosed)
	assert.Contains(t, loader.Save(ctx, "any.html", "x").Error(), ErrMsgLoaderClosed)
}
