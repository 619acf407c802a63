package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/adapterhub/internal/registry"
)

// NewRegistry builds an initialized registry from the given providers,
// failing the test on any discovery error.
func NewRegistry(t *testing.T, providers ...registry.Provider) *registry.Registry {
	t.Helper()

	reg := registry.New()
	err := reg.Discover(context.Background(), providers...)
	require.NoError(t, err, "discovery should succeed for test providers")
	require.True(t, reg.Initialized())
	return reg
}

// MathProvider returns the canonical test adapter: "math" v1.0.0 with an
// "add" method that sums two integers.
func MathProvider() *SimpleProvider {
	return &SimpleProvider{
		Name:    "math",
		Version: "1.0.0",
		Funcs: []registry.Method{
			{Name: "add", Fn: func(a, b int) int { return a + b }},
		},
	}
}
