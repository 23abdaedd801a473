// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search box.
	ViewSearch
	// ViewFood shows the nutrition label of one food.
	ViewFood
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the search settings view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewFood:
		return "food"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// SessionChanged is sent when a search session published new state.
type SessionChanged struct {
	SessionID string
}

// FoodSelected is sent when a search result pointing at a food is chosen.
type FoodSelected struct {
	Slug string
}

// FoodLoaded carries a food fetched for the food view.
type FoodLoaded struct {
	Slug string
	Food *domain.Food
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
