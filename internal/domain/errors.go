package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the product catalog cannot be
	// fetched or parsed. Without a catalog the session renders no badges.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrProductNotFound is returned when a catalog lookup by id fails.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrRateServiceUnavailable is returned when the live exchange-rate
	// fetch fails. Callers degrade to the fallback table.
	ErrRateServiceUnavailable = errors.New("exchange rate service unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPreferenceNotFound is returned when a preference key has no value.
	ErrPreferenceNotFound = errors.New("preference not found")
)
