package storage

import "errors"

var (
	// ErrMissingFile is returned when a city's listings file does not exist.
	ErrMissingFile = errors.New("file not found")
	// ErrMalformedData is returned when a file exists but cannot be used,
	// e.g. a required column is missing or the JSON is invalid.
	ErrMalformedData = errors.New("malformed data")
)
