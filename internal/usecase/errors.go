package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrRateLimited           = errors.New("completion provider rate limited")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// isDegradedModeError classifies failures that should produce a substitute
// result instead of an error: provider quota exhaustion and a tripped
// circuit both mean "no model right now", not "the request was wrong".
func isDegradedModeError(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrDependencyUnavailable)
}
