package fault

import "errors"

// Shared sentinels for the error taxonomy. Callers classify with errors.Is
// and map to HTTP statuses at the edge.
var (
	ErrValidation = errors.New("invalid input")
	ErrUpstream   = errors.New("upstream unavailable")
	ErrGeneration = errors.New("generation failed")
)
