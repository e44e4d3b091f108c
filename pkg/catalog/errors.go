package catalog

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid catalog configuration")

	// ErrUnavailable is returned when the catalog cannot be reached or
	// returns a payload that cannot be decoded
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrProductNotFound is returned when the catalog has no record for the
	// requested product id
	ErrProductNotFound = errors.New("product not found in catalog")
)
