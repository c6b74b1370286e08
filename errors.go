package pathfinder

import (
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by every caller contract violation. These are
// programming errors, not search outcomes: a search that finds no path
// reports Found == false with a nil error.
var ErrPrecondition = errors.New("pathfinder: precondition violated")

var (
	ErrDuplicateKey = fmt.Errorf("%w: key already in queue", ErrPrecondition)
	ErrMissingKey   = fmt.Errorf("%w: key not in queue", ErrPrecondition)
	ErrEmptyQueue   = fmt.Errorf("%w: remove from empty queue", ErrPrecondition)
	ErrNullNode     = fmt.Errorf("%w: node of null NodeOrNull", ErrPrecondition)
)

// ErrExpansionLimit is returned when a search finalizes more nodes than
// allowed by WithMaxExpansions.
var ErrExpansionLimit = errors.New("pathfinder: expansion limit reached")
