package shaper

import (
	"errors"
	"fmt"
)

// Sentinel errors for the shaper package.
var (
	// ErrUnsupported is returned when a strategy is not available on the
	// current platform.
	ErrUnsupported = errors.New("shaper: unsupported capability")

	// ErrShapingFailed is matched by every *ShapingError.
	ErrShapingFailed = errors.New("shaper: shaping failed")

	// ErrInvalidFeature is returned for malformed feature strings.
	ErrInvalidFeature = errors.New("shaper: invalid feature")
)

// ShapingError is returned when the engine fails on a run. No line of the
// paragraph has been delivered to the RunHandler when it is returned.
type ShapingError struct {
	// Start, End is the rune range of the failed run.
	Start, End int
	Err        error
}

func (e *ShapingError) Error() string {
	return fmt.Sprintf("shaper: shaping run [%d,%d) failed: %v", e.Start, e.End, e.Err)
}

// Unwrap returns the engine error.
func (e *ShapingError) Unwrap() error { return e.Err }

// Is reports whether target is ErrShapingFailed.
func (e *ShapingError) Is(target error) bool { return target == ErrShapingFailed }
