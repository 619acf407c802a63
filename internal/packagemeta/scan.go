package packagemeta

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/fsutil"
	"github.com/vk/adapterhub/internal/schema"
)

// ManifestFileName is the fixed base name Scan looks for in the tree.
const ManifestFileName = "package.hcl"

// AdapterRef is one package's claim that it provides a named adapter.
type AdapterRef struct {
	Name      string
	Version   string
	ConfigTag string
}

// Package is the indexed metadata for a single declared package.
type Package struct {
	Name        string
	Version     string
	Description string
	Dir         string
	Adapters    []AdapterRef

	labels   map[string]string
	metadata map[string]cty.Value
}

// Index maps package names to their metadata.
type Index struct {
	packages map[string]*Package
}

// Scan walks the tree under root, parses every package.hcl manifest it finds
// and builds the package index. Two manifests declaring the same package name
// is a configuration error.
func Scan(ctx context.Context, root string) (*Index, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning for package manifests...", "root", root)

	filePaths, err := fsutil.FindFilesByName(root, ManifestFileName)
	if err != nil {
		logger.Error("Failed to walk package root", "root", root, "error", err)
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No package manifests found in path", "root", root)
	}

	parser := hclparse.NewParser()
	idx := &Index{packages: make(map[string]*Package)}

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		var manifest schema.Manifest
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}

		for _, decl := range manifest.Packages {
			pkg, err := buildPackage(decl, filepath.Dir(filePath))
			if err != nil {
				return nil, fmt.Errorf("invalid package in %s: %w", filePath, err)
			}
			if existing, dup := idx.packages[pkg.Name]; dup {
				return nil, fmt.Errorf("package '%s' declared in both %s and %s", pkg.Name, existing.Dir, pkg.Dir)
			}
			idx.packages[pkg.Name] = pkg
			logger.Debug("Indexed package.", "package", pkg.Name, "version", pkg.Version, "adapters", len(pkg.Adapters))
		}
	}

	logger.Info("Package scan complete.", "packages", len(idx.packages))
	return idx, nil
}

func buildPackage(decl *schema.Package, dir string) (*Package, error) {
	name := strings.TrimSpace(decl.Name)
	if name == "" {
		return nil, fmt.Errorf("package name must not be empty")
	}

	pkg := &Package{
		Name:        name,
		Version:     strings.TrimSpace(decl.Version),
		Description: decl.Description,
		Dir:         dir,
		labels:      make(map[string]string),
		metadata:    make(map[string]cty.Value),
	}

	for _, a := range decl.Adapters {
		adapterName := strings.TrimSpace(a.Name)
		if adapterName == "" {
			continue
		}
		pkg.Adapters = append(pkg.Adapters, AdapterRef{
			Name:      adapterName,
			Version:   strings.TrimSpace(a.Version),
			ConfigTag: strings.TrimSpace(a.ConfigTag),
		})
	}

	for _, l := range decl.Labels {
		pkg.labels[l.Key] = l.Value
	}

	if decl.Metadata != nil {
		attrs, diags := decl.Metadata.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("metadata of package '%s': %w", name, diags)
		}
		for attrName, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("metadata attribute '%s' of package '%s': %w", attrName, name, diags)
			}
			pkg.metadata[attrName] = val
		}
	}

	return pkg, nil
}

// Lookup returns the metadata for the named package.
func (idx *Index) Lookup(name string) (*Package, bool) {
	pkg, ok := idx.packages[name]
	return pkg, ok
}

// Names returns all indexed package names in sorted order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.packages))
	for name := range idx.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of indexed packages.
func (idx *Index) Len() int {
	return len(idx.packages)
}

// Labels returns the tags tooling may attach to the package's filesystem
// entries: the package identity, one tag per provided adapter, and the
// manifest's own labels, all in sorted order.
func (p *Package) Labels() []string {
	labels := []string{"pkg:" + p.Name}
	for _, a := range p.Adapters {
		labels = append(labels, "adapter:"+a.Name)
	}
	for key, value := range p.labels {
		labels = append(labels, key+":"+value)
	}
	sort.Strings(labels)
	return labels
}
