package viewer

import "errors"

var (
	// ErrAlreadyMounted indicates OnMount was called on a mounted view.
	ErrAlreadyMounted = errors.New("viewer: view already mounted")

	// ErrEmptyHost indicates a host region with no drawable area.
	ErrEmptyHost = errors.New("viewer: host has zero size")

	// ErrNotMounted indicates an operation that needs a mounted view.
	ErrNotMounted = errors.New("viewer: view not mounted")
)
