package print_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/adapterhub/internal/registry"
	"github.com/vk/adapterhub/internal/testutil"
	"github.com/vk/adapterhub/modules/print"
)

func TestDispatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := testutil.NewRegistry(t, &print.Module{})

	t.Run("Table reports row count", func(t *testing.T) {
		t.Parallel()
		rows, ok := registry.InvokeAs[int](ctx, reg, "print", "Table", map[string]string{"a": "1", "b": "2"})
		require.True(t, ok)
		assert.Equal(t, 2, rows)
	})

	t.Run("Table tolerates nil", func(t *testing.T) {
		t.Parallel()
		rows, ok := registry.InvokeAs[int](ctx, reg, "print", "Table", nil)
		require.True(t, ok)
		assert.Zero(t, rows)
	})

	t.Run("Line is void-shaped", func(t *testing.T) {
		t.Parallel()
		v, ok := reg.Invoke(ctx, "print", "Line", "hello")
		require.True(t, ok)
		assert.Nil(t, v)
	})
}
