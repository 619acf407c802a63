package registry

// Declaration identifies a logical adapter contributed by a provider module.
// Name is the public key callers use to address the adapter; it must be
// non-empty after trimming or the whole provider is ignored. Version is an
// opaque tag, never parsed or compared semantically. ConfigTag is an optional
// identifier consumed only by the build-configuration collaborator; dispatch
// ignores it.
type Declaration struct {
	Name      string
	Version   string
	ConfigTag string
}

// Method marks a single Go function as invocable through the registry.
// An empty Name means the function's own name becomes the dispatch name.
type Method struct {
	Name string
	Fn   any
}

// Provider is implemented by every module that contributes an adapter.
// Several providers may declare the same adapter name and pool their methods
// into one entry, as long as their versions and config tags agree.
type Provider interface {
	Declare() Declaration
	Methods() []Method
}
