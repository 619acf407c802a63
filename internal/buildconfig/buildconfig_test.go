package buildconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/adapterhub/internal/buildconfig"
	"github.com/vk/adapterhub/internal/registry"
	"github.com/vk/adapterhub/internal/testutil"
)

func taggedRegistry(t *testing.T, tags ...string) *registry.Registry {
	t.Helper()
	providers := make([]registry.Provider, len(tags))
	for i, tag := range tags {
		providers[i] = &testutil.SimpleProvider{
			Name:      "adapter-" + tag,
			Version:   "1.0.0",
			ConfigTag: tag,
		}
	}
	return testutil.NewRegistry(t, providers...)
}

func TestSync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates the settings file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		reg := taggedRegistry(t, "ADAPTER_B", "ADAPTER_A")

		require.NoError(t, buildconfig.Sync(ctx, reg, path))

		symbols, err := buildconfig.Symbols(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADAPTER_A", "ADAPTER_B"}, symbols, "symbols are written sorted")
	})

	t.Run("removes symbols for absent adapters", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")

		require.NoError(t, buildconfig.Sync(ctx, taggedRegistry(t, "ADAPTER_A", "ADAPTER_B"), path))
		require.NoError(t, buildconfig.Sync(ctx, taggedRegistry(t, "ADAPTER_B"), path))

		symbols, err := buildconfig.Symbols(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADAPTER_B"}, symbols)
	})

	t.Run("adapters without a tag contribute nothing", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		reg := testutil.NewRegistry(t,
			&testutil.SimpleProvider{Name: "untagged", Version: "1.0.0"},
		)

		require.NoError(t, buildconfig.Sync(ctx, reg, path))

		symbols, err := buildconfig.Symbols(path)
		require.NoError(t, err)
		assert.Empty(t, symbols)
	})

	t.Run("preserves foreign content in the project block", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		existing := `project {
  name            = "my-game"
  adapter_symbols = ["STALE_SYMBOL"]
  render_backend  = "vulkan"
}
`
		require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

		require.NoError(t, buildconfig.Sync(ctx, taggedRegistry(t, "ADAPTER_A"), path))

		symbols, err := buildconfig.Symbols(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADAPTER_A"}, symbols)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `name            = "my-game"`)
		assert.Contains(t, string(content), "vulkan")
		assert.NotContains(t, string(content), "STALE_SYMBOL")
	})

	t.Run("skips the write when already in sync", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		reg := taggedRegistry(t, "ADAPTER_A")

		require.NoError(t, buildconfig.Sync(ctx, reg, path))
		stat1, err := os.Stat(path)
		require.NoError(t, err)

		require.NoError(t, buildconfig.Sync(ctx, reg, path))
		stat2, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, stat1.ModTime(), stat2.ModTime(), "file should not be rewritten")
	})

	t.Run("uninitialized registry is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		err := buildconfig.Sync(ctx, registry.New(), path)
		assert.ErrorIs(t, err, registry.ErrUninitialized)
	})
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	t.Run("missing file reads as empty", func(t *testing.T) {
		t.Parallel()
		symbols, err := buildconfig.Symbols(filepath.Join(t.TempDir(), "nope.hcl"))
		require.NoError(t, err)
		assert.Empty(t, symbols)
	})

	t.Run("file without a project block reads as empty", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		require.NoError(t, os.WriteFile(path, []byte("# nothing here\n"), 0o644))

		symbols, err := buildconfig.Symbols(path)
		require.NoError(t, err)
		assert.Empty(t, symbols)
	})

	t.Run("unparseable file is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "settings.hcl")
		require.NoError(t, os.WriteFile(path, []byte("project {"), 0o644))

		_, err := buildconfig.Symbols(path)
		assert.Error(t, err)
	})
}
