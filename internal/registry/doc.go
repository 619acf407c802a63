// Package registry implements the adapter registry: the central table that
// maps adapter names to versioned sets of callable methods contributed by
// provider modules.
//
// The registry is populated exactly once, by Discover, from the list of
// compiled-in providers the host program passes it. After discovery completes
// the registry is immutable and safe for concurrent readers; every query and
// invocation is a read-only operation against the one-shot index.
//
// Dispatch is deliberately forgiving: a missing adapter, a missing method, or
// a method that fails while running all degrade to a boolean failure at the
// call site. The only unrecoverable condition is two providers declaring the
// same adapter name with a different version or config tag, which aborts
// discovery before the registry ever becomes usable.
package registry
