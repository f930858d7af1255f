package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by Calculate when the hour-angle cosine falls
// outside [-1, 1]. Retrying with the same inputs cannot change the outcome.
var (
	ErrNeverRises = errors.New("sun never rises on this date at this location")
	ErrNeverSets  = errors.New("sun never sets on this date at this location")
)

// ValidationError reports an out-of-range input rejected at request
// construction time, before any calculation runs.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %g: must be within [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}
