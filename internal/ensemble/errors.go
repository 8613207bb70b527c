package ensemble

import (
	"fmt"

	"github.com/abhisek/letterid/internal/letters"
)

// ErrSelfComparison indicates a pair lookup for a label against itself.
type ErrSelfComparison struct {
	Label letters.Label
}

func (e *ErrSelfComparison) Error() string {
	return fmt.Sprintf("no classifier pairs %s with itself", e.Label)
}

// ErrNotFound indicates that the pair index has no classifier for a valid
// pair. It means the ensemble was built incorrectly.
type ErrNotFound struct {
	Pair Pair
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("no classifier stored for pair %s", e.Pair)
}

// ErrInvalidAttributeCount indicates a non-positive attribute count.
type ErrInvalidAttributeCount struct {
	Count int
}

func (e *ErrInvalidAttributeCount) Error() string {
	return fmt.Sprintf("attribute count must be positive, got %d", e.Count)
}

// ErrTrainingVector identifies a training vector of the wrong length.
type ErrTrainingVector struct {
	Label letters.Label
	Index int
	Err   error
}

func (e *ErrTrainingVector) Error() string {
	return fmt.Sprintf("training vector %s[%d]: %v", e.Label, e.Index, e.Err)
}

func (e *ErrTrainingVector) Unwrap() error { return e.Err }
