package domain

import "errors"

var (
	// ErrProjectNotFound is returned when a project id is not in the catalog
	ErrProjectNotFound = errors.New("project not found in catalog")

	// ErrCatalogUnavailable is returned when the hosted catalog cannot be reached
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
