package hashlife

import (
	"errors"
	"fmt"
)

// Construction errors
var (
	// ErrLevelMismatch indicates that the four children of an interior node
	// do not share one level.
	ErrLevelMismatch = errors.New("children have mismatched levels")

	// ErrInvalidSize indicates a negative load dimension.
	ErrInvalidSize = errors.New("invalid grid size")
)

// Advance errors
var (
	// ErrLevelTooSmall indicates a node below level 2, which has no
	// surrounding context to advance its centre.
	ErrLevelTooSmall = errors.New("node level too small to advance")

	// ErrExponentRange indicates an exponent outside [0, level-2].
	ErrExponentRange = errors.New("exponent out of range")

	// ErrNegativeRounds indicates a negative or missing generation count.
	ErrNegativeRounds = errors.New("generation count must be non-negative")
)

// LevelMismatchError carries the offending child levels. A nil child is
// reported as level -1.
type LevelMismatchError struct {
	NW, NE, SW, SE int
}

func (e *LevelMismatchError) Error() string {
	return fmt.Sprintf("%v: nw=%d ne=%d sw=%d se=%d", ErrLevelMismatch, e.NW, e.NE, e.SW, e.SE)
}

// Is makes LevelMismatchError match ErrLevelMismatch.
func (e *LevelMismatchError) Is(target error) bool { return target == ErrLevelMismatch }
