package registry

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/vk/adapterhub/internal/ctxlog"
)

// Discover builds the adapter index from the given providers. It runs at most
// once per Registry: a second call returns ErrAlreadyDiscovered.
//
// Providers are processed in argument order, and each provider's methods in
// the order its Methods slice returns them. That order is the contract for
// shadowing: when two methods claim the same dispatch name under one adapter,
// the one processed last wins.
//
// A provider whose declared name is empty after trimming is not an adapter
// and is skipped. Two declarations of one adapter name must agree on version
// and config tag; a mismatch aborts discovery with a *ConflictError and
// leaves the registry uninitialized.
func (r *Registry) Discover(ctx context.Context, providers ...Provider) error {
	logger := ctxlog.FromContext(ctx)
	if r.initialized {
		return ErrAlreadyDiscovered
	}
	if r.adapters == nil {
		r.adapters = make(map[string]*entry)
	}

	for _, p := range providers {
		decl := p.Declare()
		name := strings.TrimSpace(decl.Name)
		if name == "" {
			logger.Debug("Skipping provider with empty adapter name.", "provider", fmt.Sprintf("%T", p))
			continue
		}
		version := strings.TrimSpace(decl.Version)
		configTag := strings.TrimSpace(decl.ConfigTag)
		if version == "" {
			logger.Warn("Adapter declared without a version.", "adapter", name)
		}

		e, exists := r.adapters[name]
		if !exists {
			e = &entry{
				version:   version,
				configTag: configTag,
				methods:   make(map[string]reflect.Value),
			}
			r.adapters[name] = e
			logger.Debug("Registering adapter.", "adapter", name, "version", version)
		} else {
			if e.version != version {
				return &ConflictError{Adapter: name, Field: "version", Existing: e.version, Conflicting: version}
			}
			if e.configTag != configTag {
				return &ConflictError{Adapter: name, Field: "config tag", Existing: e.configTag, Conflicting: configTag}
			}
			logger.Debug("Merging declaration into existing adapter.", "adapter", name)
		}

		for _, m := range p.Methods() {
			fv := reflect.ValueOf(m.Fn)
			if fv.Kind() != reflect.Func || fv.IsNil() {
				logger.Warn("Skipping adapter method that is not a Go function.", "adapter", name, "method", m.Name)
				continue
			}
			dispatchName := strings.TrimSpace(m.Name)
			if dispatchName == "" {
				dispatchName = funcName(fv)
			}
			if dispatchName == "" {
				logger.Warn("Skipping adapter method with no resolvable dispatch name.", "adapter", name)
				continue
			}
			if _, shadowed := e.methods[dispatchName]; shadowed {
				logger.Warn("Adapter method shadows an earlier registration.", "adapter", name, "method", dispatchName)
			} else {
				e.order = append(e.order, dispatchName)
			}
			e.methods[dispatchName] = fv
			logger.Debug("Registered adapter method.", "adapter", name, "method", dispatchName)
		}
	}

	r.initialized = true
	logger.Info("Adapter discovery complete.", "adapters", len(r.adapters))
	return nil
}

// funcName derives a dispatch name from the function's own symbol name,
// stripping the package path and any method-value suffix. Closures yield
// names like "func1", which are resolvable but rarely what a provider wants;
// declared functions should be preferred.
func funcName(fv reflect.Value) string {
	rf := runtime.FuncForPC(fv.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
