package similarity

import (
	"errors"
	"fmt"
)

// ErrInsufficientCandidates marks a Warning; it is never returned as an error.
var ErrInsufficientCandidates = errors.New("similarity: insufficient candidates")

// Warning reports that fewer candidates exist than were requested.
type Warning struct {
	Found int
	N     int
	Lower bool
}

func (w Warning) Error() string {
	return fmt.Sprintf("we could only find %d feasible words; consider changing n (%d) or lower (%v)", w.Found, w.N, w.Lower)
}

func (w Warning) Unwrap() error { return ErrInsufficientCandidates }
