package web

import "github.com/custodia-labs/nutri-cli/internal/core/ports/driving"

// Ports aggregates the driving ports the web server calls.
type Ports struct {
	Search driving.SearchService
	Food   driving.FoodService

	// Settings supplies search and rate limit settings. Optional.
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
