package web

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("web: search service is required")

// ErrMissingFoodService is returned when the food service is not provided.
var ErrMissingFoodService = errors.New("web: food service is required")
