package store

import (
	"fmt"
	"strings"
)

// IsLower reports whether token is unchanged by lowercasing. Tokens without
// cased letters, such as numbers or punctuation, count as lowercase.
func IsLower(token string) bool {
	return strings.ToLower(token) == token
}

// FilterLower returns the tokens that satisfy IsLower, preserving order.
func FilterLower(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if IsLower(t) {
			out = append(out, t)
		}
	}
	return out
}

// ValidateEntry checks a token/vector pair against the store dimension. A dim
// of zero accepts any non-empty vector.
func ValidateEntry(token string, vector []float32, dim int) error {
	if token == "" {
		return ErrEmptyToken
	}
	if len(vector) == 0 || (dim > 0 && len(vector) != dim) {
		return &DimensionError{Token: token, Expected: dim, Actual: len(vector)}
	}
	return nil
}

// DimensionError reports the offending entry of a dimension mismatch.
type DimensionError struct {
	Token    string
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("store: token %q has dimension %d, want %d", e.Token, e.Actual, e.Expected)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }
