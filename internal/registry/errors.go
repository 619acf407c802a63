package registry

import (
	"errors"
	"fmt"
)

// ErrUninitialized is returned by every query on a registry whose discovery
// has not run to completion. It signals a process-level setup failure, not a
// lookup miss, so callers can tell it apart from a plain "not found".
var ErrUninitialized = errors.New("adapter registry is not initialized")

// ErrUnknownAdapter is returned when a query names an adapter that is not in
// the index.
var ErrUnknownAdapter = errors.New("unknown adapter")

// ErrAlreadyDiscovered is returned when Discover is called on a registry that
// already completed discovery. A rebuild requires a fresh registry.
var ErrAlreadyDiscovered = errors.New("adapter discovery already completed")

// ConflictError reports two declarations of the same adapter name that
// disagree on version or config tag. It is the one fatal discovery failure:
// the declarations are ambiguous and cannot be reconciled automatically.
type ConflictError struct {
	Adapter     string
	Field       string
	Existing    string
	Conflicting string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting declarations for adapter '%s': %s '%s' does not match previously declared '%s'",
		e.Adapter, e.Field, e.Conflicting, e.Existing)
}
