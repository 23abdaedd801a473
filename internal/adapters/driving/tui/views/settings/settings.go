// Package settings provides the search settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that settings cannot be loaded or saved.
var ErrNoSettingsService = errors.New("settings service not available")

// field is one adjustable row. step moves the value by dir (+1 or -1).
type field struct {
	name  string
	value func(s *domain.SearchSettings) string
	step  func(s *domain.SearchSettings, dir int)
}

var fields = []field{
	{
		name:  "Group by category",
		value: func(s *domain.SearchSettings) string { return onOff(s.GroupByCategory) },
		step:  func(s *domain.SearchSettings, _ int) { s.GroupByCategory = !s.GroupByCategory },
	},
	{
		name:  "Match category",
		value: func(s *domain.SearchSettings) string { return onOff(s.MatchCategory) },
		step:  func(s *domain.SearchSettings, _ int) { s.MatchCategory = !s.MatchCategory },
	},
	{
		name:  "Presentation",
		value: func(s *domain.SearchSettings) string { return string(s.Presentation) },
		step: func(s *domain.SearchSettings, _ int) {
			if s.Presentation == domain.PresentationModalDialog {
				s.Presentation = domain.PresentationInlineList
			} else {
				s.Presentation = domain.PresentationModalDialog
			}
		},
	},
	{
		name:  "Result media",
		value: func(s *domain.SearchSettings) string { return string(s.ResultMedia) },
		step: func(s *domain.SearchSettings, _ int) {
			if s.ResultMedia == domain.ResultMediaImage {
				s.ResultMedia = domain.ResultMediaIcon
			} else {
				s.ResultMedia = domain.ResultMediaImage
			}
		},
	},
	{
		name:  "Minimum query length",
		value: func(s *domain.SearchSettings) string { return fmt.Sprint(s.MinQueryLength) },
		step:  func(s *domain.SearchSettings, dir int) { s.MinQueryLength = max(1, s.MinQueryLength+dir) },
	},
	{
		name:  "Debounce (ms)",
		value: func(s *domain.SearchSettings) string { return fmt.Sprint(s.DebounceMS) },
		step:  func(s *domain.SearchSettings, dir int) { s.DebounceMS = max(0, s.DebounceMS+50*dir) },
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View lists the search box settings and saves each change at once.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSettings() tea.Cmd {
	svc := v.settingsService
	snapshot := *v.settings
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Save(&snapshot)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case "enter", " ", "right", "l":
		return v, v.change(1)
	case "left", "h":
		return v, v.change(-1)
	}
	return v, nil
}

func (v *View) change(dir int) tea.Cmd {
	if v.settings == nil {
		return nil
	}
	fields[v.selected].step(&v.settings.Search, dir)
	return v.saveSettings()
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Search settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	for i, f := range fields {
		line := fmt.Sprintf("%-24s %s", f.name, f.value(&v.settings.Search))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [←/→] Change  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns the cursor to the first row.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
}

// Settings returns the loaded settings, or nil.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the highlighted row.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}
