package packagemeta

import (
	"context"
	"fmt"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
)

// State classifies one package-declared adapter against the live registry.
type State string

const (
	// StateActive means the adapter is registered and matches the manifest.
	StateActive State = "active"
	// StateMissing means the manifest declares an adapter the registry does
	// not have. The expected case for an absent optional package.
	StateMissing State = "missing"
	// StateVersionDrift means the manifest pins a version that differs from
	// what discovery registered.
	StateVersionDrift State = "version-drift"
	// StateTagDrift means the manifest's config tag differs from the
	// registered one.
	StateTagDrift State = "tag-drift"
)

// AdapterStatus is the cross-reference result for one (package, adapter)
// pair.
type AdapterStatus struct {
	Package         string
	Adapter         string
	State           State
	DeclaredVersion string
	ActualVersion   string
}

// CrossReference checks every adapter claim in the index against the
// registry. It only reads the registry; an uninitialized registry is the one
// error it can return.
func (idx *Index) CrossReference(ctx context.Context, reg *registry.Registry) ([]AdapterStatus, error) {
	logger := ctxlog.FromContext(ctx)

	var statuses []AdapterStatus
	for _, pkgName := range idx.Names() {
		pkg := idx.packages[pkgName]
		for _, ref := range pkg.Adapters {
			status, err := resolve(reg, pkg.Name, ref)
			if err != nil {
				return nil, err
			}
			if status.State != StateActive {
				logger.Warn("Package adapter is not clean.", "package", pkg.Name, "adapter", ref.Name, "state", status.State)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func resolve(reg *registry.Registry, pkgName string, ref AdapterRef) (AdapterStatus, error) {
	status := AdapterStatus{
		Package:         pkgName,
		Adapter:         ref.Name,
		DeclaredVersion: ref.Version,
	}

	present, err := reg.HasAdapter(ref.Name)
	if err != nil {
		return AdapterStatus{}, fmt.Errorf("cross-referencing package '%s': %w", pkgName, err)
	}
	if !present {
		status.State = StateMissing
		return status, nil
	}

	version, err := reg.Version(ref.Name)
	if err != nil {
		return AdapterStatus{}, fmt.Errorf("cross-referencing package '%s': %w", pkgName, err)
	}
	status.ActualVersion = version

	if ref.Version != "" && ref.Version != version {
		status.State = StateVersionDrift
		return status, nil
	}

	if ref.ConfigTag != "" {
		tag, err := reg.ConfigTag(ref.Name)
		if err != nil {
			return AdapterStatus{}, fmt.Errorf("cross-referencing package '%s': %w", pkgName, err)
		}
		if ref.ConfigTag != tag {
			status.State = StateTagDrift
			return status, nil
		}
	}

	status.State = StateActive
	return status, nil
}
