package registry_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/adapterhub/internal/registry"
	"github.com/vk/adapterhub/internal/testutil"
)

func TestInvoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success path", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, testutil.MathProvider())

		v, ok := reg.Invoke(ctx, "math", "add", 2, 3)
		require.True(t, ok)
		assert.Equal(t, 5, v)
	})

	t.Run("unknown adapter and method fail without a call", func(t *testing.T) {
		t.Parallel()
		called := false
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "math", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "add", Fn: func(a, b int) int { called = true; return a + b }}},
		})

		v, ok := reg.Invoke(ctx, "nonexistent", "add", 2, 3)
		assert.False(t, ok)
		assert.Nil(t, v)

		v, ok = reg.Invoke(ctx, "math", "nonexistent", 2, 3)
		assert.False(t, ok)
		assert.Nil(t, v)

		assert.False(t, called, "no bound function should have run")
	})

	t.Run("argument mismatch is contained", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, testutil.MathProvider())

		v, ok := reg.Invoke(ctx, "math", "add", "not-a-number")
		assert.False(t, ok)
		assert.Nil(t, v)

		// The registry survives the failed call.
		v, ok = reg.Invoke(ctx, "math", "add", 2, 3)
		require.True(t, ok)
		assert.Equal(t, 5, v)
	})

	t.Run("panicking method is contained", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "flaky", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "boom", Fn: func() { panic("kaboom") }}},
		})

		v, ok := reg.Invoke(ctx, "flaky", "boom")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("non-nil error result fails the call", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "store", Version: "1.0.0",
			Funcs: []registry.Method{
				{Name: "get", Fn: func(key string) (string, error) {
					if key == "known" {
						return "value", nil
					}
					return "", errors.New("no such key")
				}},
			},
		})

		v, ok := reg.Invoke(ctx, "store", "get", "known")
		require.True(t, ok)
		assert.Equal(t, "value", v)

		v, ok = reg.Invoke(ctx, "store", "get", "unknown")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("void methods succeed with a nil value", func(t *testing.T) {
		t.Parallel()
		ran := false
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "side", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "touch", Fn: func() { ran = true }}},
		})

		v, ok := reg.Invoke(ctx, "side", "touch")
		require.True(t, ok)
		assert.Nil(t, v)
		assert.True(t, ran)
	})

	t.Run("error-only methods succeed with a nil value", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "side", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "ping", Fn: func() error { return nil }}},
		})

		v, ok := reg.Invoke(ctx, "side", "ping")
		require.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("context is injected when the method wants one", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "ctxy", Version: "1.0.0",
			Funcs: []registry.Method{
				{Name: "echo", Fn: func(ctx context.Context, s string) string {
					require.NotNil(t, ctx)
					return s
				}},
			},
		})

		v, ok := reg.Invoke(ctx, "ctxy", "echo", "hello")
		require.True(t, ok)
		assert.Equal(t, "hello", v)
	})

	t.Run("nil arguments become zero values", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "maps", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "size", Fn: func(m map[string]string) int { return len(m) }}},
		})

		v, ok := reg.Invoke(ctx, "maps", "size", nil)
		require.True(t, ok)
		assert.Equal(t, 0, v)
	})

	t.Run("variadic methods", func(t *testing.T) {
		t.Parallel()
		reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
			Name: "math", Version: "1.0.0",
			Funcs: []registry.Method{{Name: "sum", Fn: func(nums ...int) int {
				total := 0
				for _, n := range nums {
					total += n
				}
				return total
			}}},
		})

		v, ok := reg.Invoke(ctx, "math", "sum", 1, 2, 3, 4)
		require.True(t, ok)
		assert.Equal(t, 10, v)
	})
}

func TestInvokeAs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := testutil.NewRegistry(t, &testutil.SimpleProvider{
		Name: "typed", Version: "1.0.0",
		Funcs: []registry.Method{
			{Name: "answer", Fn: func() int { return 42 }},
			{Name: "ratio", Fn: func() float64 { return 2.5 }},
			{Name: "name", Fn: func() string { return "typed" }},
		},
	})

	t.Run("matching type", func(t *testing.T) {
		t.Parallel()
		v, ok := registry.InvokeAs[int](ctx, reg, "typed", "answer")
		require.True(t, ok)
		assert.Equal(t, 42, v)
	})

	t.Run("numeric conversion", func(t *testing.T) {
		t.Parallel()
		v, ok := registry.InvokeAs[float64](ctx, reg, "typed", "answer")
		require.True(t, ok)
		assert.Equal(t, 42.0, v)

		i, ok := registry.InvokeAs[int](ctx, reg, "typed", "ratio")
		require.True(t, ok)
		assert.Equal(t, 2, i)
	})

	t.Run("mismatch yields the zero value", func(t *testing.T) {
		t.Parallel()
		v, ok := registry.InvokeAs[int](ctx, reg, "typed", "name")
		assert.False(t, ok)
		assert.Zero(t, v)

		s, ok := registry.InvokeAs[string](ctx, reg, "typed", "answer")
		assert.False(t, ok)
		assert.Empty(t, s)
	})

	t.Run("failed invocation yields the zero value", func(t *testing.T) {
		t.Parallel()
		v, ok := registry.InvokeAs[int](ctx, reg, "typed", "missing-method")
		assert.False(t, ok)
		assert.Zero(t, v)
	})
}

func TestInvokeFallbacks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := testutil.NewRegistry(t, testutil.MathProvider())

	t.Run("InvokeOr returns the value on success", func(t *testing.T) {
		t.Parallel()
		v := reg.InvokeOr(ctx, "math", "add", -1, 2, 3)
		assert.Equal(t, 5, v)
	})

	t.Run("InvokeOr returns the fallback on failure", func(t *testing.T) {
		t.Parallel()
		v := reg.InvokeOr(ctx, "math", "missing-method", -1)
		assert.Equal(t, -1, v)
	})

	t.Run("InvokeOrDefault is typed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 5, registry.InvokeOrDefault(ctx, reg, "math", "add", -1, 2, 3))
		assert.Equal(t, -1, registry.InvokeOrDefault(ctx, reg, "math", "missing-method", -1))
	})

	t.Run("InvokeInto stores the result", func(t *testing.T) {
		t.Parallel()
		var out int
		ok := registry.InvokeInto(ctx, reg, "math", "add", &out, 2, 3)
		require.True(t, ok)
		assert.Equal(t, 5, out)
	})

	t.Run("InvokeInto zeroes the target on failure", func(t *testing.T) {
		t.Parallel()
		out := 99
		ok := registry.InvokeInto(ctx, reg, "math", "missing-method", &out)
		assert.False(t, ok)
		assert.Zero(t, out)
	})
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := testutil.NewRegistry(t, testutil.MathProvider())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, ok := reg.Invoke(ctx, "math", "add", j, 1)
				assert.True(t, ok)
				assert.Equal(t, j+1, v)

				has, err := reg.HasAdapter("math")
				assert.NoError(t, err)
				assert.True(t, has)
			}
		}()
	}
	wg.Wait()
}
