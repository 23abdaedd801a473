// Package mcp provides an MCP (Model Context Protocol) server adapter for nutri.
// It lets AI assistants search the food catalog and read nutrition labels.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingFoodService is returned when the food service is not provided.
var ErrMissingFoodService = errors.New("mcp: food service is required")
