// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// Mode selects the keybinding hints shown on the right.
type Mode string

const (
	ModeSearch Mode = "search"
	ModeFood   Mode = "food"
)

// Bar displays the search status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	mode        Mode
	status      domain.SearchStatus
	message     string
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		mode:   ModeSearch,
		status: domain.SearchStatusIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" && s.status != domain.SearchStatusError {
		return s.styles.Normal.Render(s.message)
	}
	switch s.status {
	case domain.SearchStatusSearching:
		return s.styles.Muted.Render("Searching...")
	case domain.SearchStatusError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case domain.SearchStatusHasResults:
		if s.resultCount == 1 {
			return s.styles.Normal.Render("1 result")
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.resultCount))
	case domain.SearchStatusNoResults:
		return s.styles.Muted.Render("No results")
	case domain.SearchStatusIdle:
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.mode == ModeFood:
		bindings = s.keymap.FoodHelp()
	case s.resultCount > 0:
		bindings = s.keymap.ResultsHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSnapshot mirrors a session snapshot.
func (s *Bar) SetSnapshot(state domain.SessionState) {
	s.status = state.Status
	s.resultCount = len(state.Results)
	if state.Status == domain.SearchStatusError {
		s.message = state.ErrorMessage
	}
}

// SetMode sets which hints are shown.
func (s *Bar) SetMode(mode Mode) {
	s.mode = mode
}

// Mode returns the current mode.
func (s *Bar) Mode() Mode {
	return s.mode
}

// Status returns the mirrored search status.
func (s *Bar) Status() domain.SearchStatus {
	return s.status
}

// SetMessage sets a transient message that replaces the status text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.status = domain.SearchStatusIdle
	s.message = ""
	s.resultCount = 0
}
