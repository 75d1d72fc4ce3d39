package domain

import "errors"

var (
	// ErrSourceNotFound is returned when a dataset file or stream is absent
	ErrSourceNotFound = errors.New("source not found")

	// ErrMalformedTimestamp fails a whole load when any row timestamp cannot be parsed
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedPercentage fails a whole load when a strict percentage cell is invalid
	ErrMalformedPercentage = errors.New("malformed percentage")

	// ErrMissingColumn is returned when a declared column is absent from the header
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidHolding is returned when a holding has a non-positive quantity or price
	ErrInvalidHolding = errors.New("invalid holding")

	// ErrUnknownMetric is returned when a query names a column the dataset does not have
	ErrUnknownMetric = errors.New("unknown metric")
)
