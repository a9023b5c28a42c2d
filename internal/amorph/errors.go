package amorph

import "errors"

// Fatal build errors. All of them abort a build before any particle is
// placed; a partial particle list is never returned alongside an error.
var (
	// ErrUnknownSpecies means a species symbol is not in the property table.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrNonFiniteResult means density planning hit a non-finite
	// intermediate quantity (zero-volume box, zero mass, ...).
	ErrNonFiniteResult = errors.New("non-finite result")

	// ErrInvalidCount means density planning produced a negative or
	// not-a-number atom count.
	ErrInvalidCount = errors.New("invalid atom count")
)
