package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilter = errors.New("invalid search filter")
	ErrInvalidRating = errors.New("rating out of range")
	ErrMovieNotFound = errors.New("movie not found")
)

// FacetError tags a failed facet query with the facet it came from. The
// orchestrator never substitutes an empty result for a failed provider.
type FacetError struct {
	Facet string
	Err   error
}

func (e *FacetError) Error() string {
	return fmt.Sprintf("facet %q: %v", e.Facet, e.Err)
}

func (e *FacetError) Unwrap() error {
	return e.Err
}
