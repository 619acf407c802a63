// Package env_vars contributes the 'env' adapter: read-only access to the
// process environment.
package env_vars

import (
	"os"
	"strings"

	"github.com/vk/adapterhub/internal/registry"
)

// Module implements the registry.Provider interface for this package.
type Module struct{}

// Declare identifies the 'env' adapter.
func (m *Module) Declare() registry.Declaration {
	return registry.Declaration{Name: "env", Version: "1.0.0", ConfigTag: "ADAPTER_ENV"}
}

// Methods lists the adapter's dispatchable functions. Expand is registered
// without an explicit name and picks up its function name.
func (m *Module) Methods() []registry.Method {
	return []registry.Method{
		{Name: "All", Fn: All},
		{Name: "Get", Fn: Get},
		{Fn: Expand},
	}
}

// All returns the full process environment as a map.
func All() map[string]string {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// Get returns the value of a single environment variable, empty if unset.
func Get(name string) string {
	return os.Getenv(name)
}

// Expand substitutes ${var} or $var references in s from the environment.
func Expand(s string) string {
	return os.Expand(s, os.Getenv)
}
