package driving

import "github.com/custodia-labs/nutri-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its configuration key, e.g. "search.group_by_category".
	Set(key, value string) error

	// Keys returns the recognised configuration keys.
	Keys() []string

	// Validate checks that the current settings can be used.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
