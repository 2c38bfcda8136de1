package leantpl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("hooks run in registration order", func(t *testing.T) {
		r := NewHookRegistry()
		var order []string
		r.Register(HookBeforeRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			order = append(order, "first")
			return nil
		})
		r.Register(HookBeforeRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			order = append(order, "second")
			return nil
		})

		require.NoError(t, r.Run(ctx, HookBeforeRender, NewHookData("t.html", nil)))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("before hook error stops the chain", func(t *testing.T) {
		r := NewHookRegistry()
		reached := false
		r.Register(HookBeforeRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			return errors.New("veto")
		})
		r.Register(HookBeforeRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			reached = true
			return nil
		})

		err := r.Run(ctx, HookBeforeRender, NewHookData("t.html", nil))
		require.Error(t, err)
		assert.False(t, reached)
	})

	t.Run("after hook errors do not stop the chain", func(t *testing.T) {
		r := NewHookRegistry()
		reached := false
		r.Register(HookAfterRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			return errors.New("ignored")
		})
		r.Register(HookAfterRender, func(ctx context.Context, point HookPoint, data *HookData) error {
			reached = true
			return nil
		})

		require.NoError(t, r.Run(ctx, HookAfterRender, NewHookData("t.html", nil)))
		assert.True(t, reached)
	})

	t.Run("clear and counts", func(t *testing.T) {
		r := NewHookRegistry()
		hook := func(ctx context.Context, point HookPoint, data *HookData) error { return nil }
		r.Register(HookBeforeRender, hook)
		r.Register(HookBeforeRender, hook)
		r.Register(HookAfterRender, hook)

		assert.Equal(t, 2, r.Count(HookBeforeRender))
		assert.True(t, r.HasHooks(HookAfterRender))

		r.Clear(HookBeforeRender)
		assert.Equal(t, 0, r.Count(HookBeforeRender))
		assert.True(t, r.HasHooks(HookAfterRender))

		r.ClearAll()
		assert.False(t, r.HasHooks(HookAfterRender))
	})

	t.Run("run with no hooks is a no-op", func(t *testing.T) {
		r := NewHookRegistry()
		assert.NoError(t, r.Run(ctx, HookBeforeRender, NewHookData("", nil)))
	})
}

func TestHookData(t *testing.T) {
	t.Run("builders", func(t *testing.T) {
		data := NewHookData("t.html", map[string]any{"k": "v"}).
			WithResult("output").
			WithError(errors.New("boom"))

		assert.Equal(t, "t.html", data.TemplateName)
		assert.Equal(t, "output", data.Result)
		assert.EqualError(t, data.Error, "boom")
	})

	t.Run("metadata passes between hooks", func(t *testing.T) {
		data := NewHookData("t.html", nil)
		data.SetMetadata("trace", "abc123")

		v, ok := data.GetMetadata("trace")
		require.True(t, ok)
		assert.Equal(t, "abc123", v)

		_, ok = data.GetMetadata("missing")
		assert.False(t, ok)
	})

	t.Run("nil metadata map", func(t *testing.T) {
		data := &HookData{}
		_, ok := data.GetMetadata("k")
		assert.False(t, ok)

		data.SetMetadata("k", 1)
		v, ok := data.GetMetadata("k")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})
}
