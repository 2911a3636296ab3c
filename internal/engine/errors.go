package engine

import "errors"

// Sentinel errors per SPEC_FULL §7. Callers at the HTTP boundary inspect
// these with errors.Is; the engine itself never logs them, it only wraps.
var (
	ErrNotFound   = errors.New("engine: not found")
	ErrValidation = errors.New("engine: validation failed")
	ErrTransient  = errors.New("engine: transient failure")
	ErrInternal   = errors.New("engine: internal invariant violation")
)
