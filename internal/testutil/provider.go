// Package testutil provides shared helpers for constructing providers and
// registries in tests.
package testutil

import "github.com/vk/adapterhub/internal/registry"

// SimpleProvider is a test helper for declaring an adapter inline: set the
// declaration fields and the method list and pass it straight to Discover.
type SimpleProvider struct {
	Name      string
	Version   string
	ConfigTag string
	Funcs     []registry.Method
}

// Declare implements the registry.Provider interface.
func (p *SimpleProvider) Declare() registry.Declaration {
	return registry.Declaration{Name: p.Name, Version: p.Version, ConfigTag: p.ConfigTag}
}

// Methods implements the registry.Provider interface.
func (p *SimpleProvider) Methods() []registry.Method {
	return p.Funcs
}

// NoOpProvider declares a single "noop" adapter with one method that takes
// nothing and returns nothing. Useful for tests that need a valid registry
// but never care about a call's result.
type NoOpProvider struct{}

// Declare implements the registry.Provider interface.
func (p *NoOpProvider) Declare() registry.Declaration {
	return registry.Declaration{Name: "noop", Version: "0.0.1"}
}

// Methods implements the registry.Provider interface.
func (p *NoOpProvider) Methods() []registry.Method {
	return []registry.Method{
		{Name: "NoOp", Fn: func() {}},
	}
}
