package registry

import (
	"reflect"
	"sort"
)

// entry is the indexed state for one adapter name: its validated version and
// config tag, plus the dispatch-name to function table in insertion order.
type entry struct {
	version   string
	configTag string
	methods   map[string]reflect.Value
	order     []string
}

// Registry holds the adapter index for a single application instance. It is
// write-only during Discover and read-only forever after, so concurrent
// readers need no locking.
type Registry struct {
	adapters    map[string]*entry
	initialized bool
}

// New creates an empty, uninitialized Registry. Every operation fails with
// ErrUninitialized until Discover has run to completion.
func New() *Registry {
	return &Registry{adapters: make(map[string]*entry)}
}

// Initialized reports whether discovery ran to completion.
func (r *Registry) Initialized() bool {
	return r.initialized
}

// HasAdapter reports whether an adapter with the given name was discovered.
func (r *Registry) HasAdapter(name string) (bool, error) {
	if !r.initialized {
		return false, ErrUninitialized
	}
	_, ok := r.adapters[name]
	return ok, nil
}

// HasMethod reports whether the adapter exists and exposes the given
// dispatch name.
func (r *Registry) HasMethod(adapter, method string) (bool, error) {
	if !r.initialized {
		return false, ErrUninitialized
	}
	e, ok := r.adapters[adapter]
	if !ok {
		return false, nil
	}
	_, ok = e.methods[method]
	return ok, nil
}

// Version returns the version tag the adapter was declared with.
func (r *Registry) Version(adapter string) (string, error) {
	if !r.initialized {
		return "", ErrUninitialized
	}
	e, ok := r.adapters[adapter]
	if !ok {
		return "", ErrUnknownAdapter
	}
	return e.version, nil
}

// ConfigTag returns the adapter's build-configuration tag, which may be
// empty. It exists for the build-configuration collaborator; dispatch never
// consults it.
func (r *Registry) ConfigTag(adapter string) (string, error) {
	if !r.initialized {
		return "", ErrUninitialized
	}
	e, ok := r.adapters[adapter]
	if !ok {
		return "", ErrUnknownAdapter
	}
	return e.configTag, nil
}

// Adapters returns the discovered adapter names in sorted order.
func (r *Registry) Adapters() ([]string, error) {
	if !r.initialized {
		return nil, ErrUninitialized
	}
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MethodNames returns the adapter's dispatch names in the order they were
// registered during discovery.
func (r *Registry) MethodNames(adapter string) ([]string, error) {
	if !r.initialized {
		return nil, ErrUninitialized
	}
	e, ok := r.adapters[adapter]
	if !ok {
		return nil, ErrUnknownAdapter
	}
	names := make([]string, len(e.order))
	copy(names, e.order)
	return names, nil
}
