// Package schema defines the HCL structures for package manifests and
// project settings files. These are the on-disk surfaces of the two
// collaborators that sit around the adapter registry; the registry core
// itself has no file format.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Package Manifest Structures ---

// Manifest represents the top-level structure of a package.hcl file. One
// manifest file may declare several packages, though one is the common case.
type Manifest struct {
	Packages []*Package `hcl:"package,block"`
}

// Package represents a `package` block: an optional component that may
// contribute one or more adapters to the registry.
type Package struct {
	Name        string     `hcl:"name,label"`
	Version     string     `hcl:"version"`
	Description string     `hcl:"description,optional"`
	Adapters    []*Adapter `hcl:"adapter,block"`
	Labels      []*Label   `hcl:"label,block"`
	Metadata    *Metadata  `hcl:"metadata,block"`
}

// Adapter represents an `adapter` block: the package's claim that it
// provides the named adapter. Version and config tag, when declared, are
// cross-checked against what discovery actually registered.
type Adapter struct {
	Name      string `hcl:"name,label"`
	Version   string `hcl:"version,optional"`
	ConfigTag string `hcl:"config_tag,optional"`
}

// Label represents a `label` block: a free-form key/value tag attached to
// the package for editor and tooling use.
type Label struct {
	Key   string `hcl:"key,label"`
	Value string `hcl:"value"`
}

// Metadata represents the `metadata` block. Its attributes are free-form and
// decoded lazily, so the body is kept as-is.
type Metadata struct {
	Body hcl.Body `hcl:",remain"`
}

// --- Project Settings Structures ---

// Settings represents the top-level structure of a project settings file.
type Settings struct {
	Project *Project `hcl:"project,block"`
	Remain  hcl.Body `hcl:",remain"`
}

// Project represents the `project` block. Only adapter_symbols is managed by
// this tool; everything else in the block belongs to other tooling and must
// survive a rewrite untouched.
type Project struct {
	AdapterSymbols []string `hcl:"adapter_symbols,optional"`
	Remain         hcl.Body `hcl:",remain"`
}
