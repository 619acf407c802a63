// Package packagemeta scans a directory tree for package manifests and
// builds an index of package name to metadata. It is a read-only consumer of
// the adapter registry: cross-referencing asks the registry which declared
// adapters are actually present and at which version, and never mutates it.
package packagemeta
