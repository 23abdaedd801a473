package mcp

import (
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Food provides food lookup and labels.
	Food driving.FoodService

	// Settings supplies search defaults. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Food == nil {
		return ErrMissingFoodService
	}
	return nil
}
