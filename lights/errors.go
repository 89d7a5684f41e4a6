package lights

import "errors"

var (
	// ErrInvalidOrder is returned when a service order is not a permutation
	// of the five direction indices.
	ErrInvalidOrder = errors.New("lights: order must be a permutation of 0..4")

	// ErrInvalidDelays is returned when a delay list does not carry exactly
	// three values per direction.
	ErrInvalidDelays = errors.New("lights: delays must contain 15 values")

	// ErrMalformedSnapshot is returned when an encoded snapshot cannot be
	// decoded.
	ErrMalformedSnapshot = errors.New("lights: malformed snapshot")
)
