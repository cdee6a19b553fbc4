package location

import "errors"

var (
	// ErrUnknownLocation is returned when a display name is not registered.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrDuplicateLocation is returned when two locations share a name or a
	// site parameter.
	ErrDuplicateLocation = errors.New("duplicate location")

	// ErrEmptyLocation is returned when a location has an empty name or
	// site parameter.
	ErrEmptyLocation = errors.New("location name and parameter must not be empty")
)
