package spatial

import "errors"

var (
	// ErrEmptyInput is returned by Build methods that need at least one element.
	ErrEmptyInput = errors.New("spatial: empty input")

	// ErrInvalidRadius is returned for a negative or NaN search radius.
	ErrInvalidRadius = errors.New("spatial: invalid radius")

	// ErrInvalidPointBuffer is returned by Point.SetPacked when the buffer
	// does not hold exactly three packed float32 values.
	ErrInvalidPointBuffer = errors.New("spatial: invalid packed point buffer")

	// ErrInvalidHierarchy is returned by MortonHierarchy.Validate.
	ErrInvalidHierarchy = errors.New("spatial: invalid hierarchy")

	// ErrDuplicateIndex is returned when two points of a cloud share an Index
	// where Index must identify a single point.
	ErrDuplicateIndex = errors.New("spatial: duplicate point index")

	// ErrUnknownAlgorithm describes an unset or unrecognized Algorithm.
	ErrUnknownAlgorithm = errors.New("spatial: unknown algorithm")
)
