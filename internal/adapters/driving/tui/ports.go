// Package tui provides the interactive terminal search box for nutri.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search opens search sessions.
	Search driving.SearchService

	// Food loads foods for the nutrition label view.
	Food driving.FoodService

	// Settings supplies the search box configuration. Optional; without it
	// the defaults apply and the settings view is read-only.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, food driving.FoodService, settings driving.SettingsService) *Ports {
	return &Ports{
		Search:   search,
		Food:     food,
		Settings: settings,
	}
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
