package engine

import (
	"errors"
	"fmt"
)

// ErrSizeUnreachable is returned when no parameter setting within the
// target-size search bounds meets the requested byte budget.
var ErrSizeUnreachable = errors.New("target size not achievable")

// EncodeError wraps a failure from an encoder backend.
type EncodeError struct {
	Algorithm Algorithm
	Err       error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Algorithm, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
