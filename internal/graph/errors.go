package graph

import "errors"

// Edit-boundary failures. Mutations referencing an id that does not exist
// are rejected with one of the ErrUnknown* sentinels; the traversal side of
// the engine never returns these, it treats dangling ids as edgeless.
var (
	ErrUnknownTarget        = errors.New("unknown target")
	ErrUnknownVulnerability = errors.New("unknown vulnerability")
	ErrUnknownAttacker      = errors.New("unknown attacker")
	ErrDuplicateID          = errors.New("duplicate id")
	ErrDuplicateName        = errors.New("duplicate name")
)
