package types

import (
	"errors"
	"fmt"
)

// Error taxonomy. Typed errors wrap the sentinels so callers can branch
// with errors.Is while still reading the attempt count.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSearchExhausted = errors.New("search exhausted")
	ErrCancelled       = errors.New("search cancelled")
)

// ExhaustedError is returned when the attempt cap is reached with no match.
// Attempts always equals the cap exactly.
type ExhaustedError struct {
	Attempts int64
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("search exhausted after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrSearchExhausted
}

// CancelledError is returned when the surrounding context is cancelled
// before the attempt cap is reached. Attempts is the count performed so far.
type CancelledError struct {
	Attempts int64
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("search cancelled after %d attempts", e.Attempts)
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}
