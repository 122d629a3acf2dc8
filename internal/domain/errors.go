package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingList is returned when the shopping list is absent from a request
	ErrMissingList = errors.New("shopping list is required")

	// ErrMissingOffers is returned when no offer table is supplied and no catalog feed is configured
	ErrMissingOffers = errors.New("price offers are required")

	// ErrProductNotFound is returned when a list item cannot be resolved to any catalog product
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrLowConfidence is returned when a fuzzy name resolution falls below the threshold
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog feed request fails
	ErrCatalogUnavailable = errors.New("catalog feed request failed")
)
