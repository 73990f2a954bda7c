package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode has no product in Open Food Facts
	ErrProductNotFound = errors.New("product not found")

	// ErrNoIngredients is returned when a product has no ingredient text to analyze
	ErrNoIngredients = errors.New("no ingredients found for product")

	// ErrEmptyClaim is returned when the claim to analyze is blank
	ErrEmptyClaim = errors.New("claim is empty")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrOpenFoodFactsFailure is returned when an Open Food Facts API request fails
	ErrOpenFoodFactsFailure = errors.New("Open Food Facts API request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
