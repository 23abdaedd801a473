package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/views/food"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView     *menu.View
	searchView   *search.View
	foodView     *food.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Search, ports.Settings),
		foodView:     food.NewView(s, km, ports.Food),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.foodView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("nutri - Food Search"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.searchView.Close()
			return a, tea.Quit
		}
		return a, a.forwardToCurrent(msg)

	case tea.MouseMsg:
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SessionChanged:
		// Session notifications keep arriving while another view is shown.
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.FoodSelected:
		// A completed selection resets the search box.
		a.searchView.Reset()
		a.currentView = messages.ViewFood
		return a, a.foodView.SetFood(msg.Slug)

	case messages.FoodLoaded:
		a.foodView, cmd = a.foodView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		a.searchView.Close()
		return a, tea.Quit
	}

	return a, a.forwardToCurrent(msg)
}

// switchTo activates view. Entering search from the menu opens a fresh
// session; coming back from a food keeps the current one.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	previous := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewSearch:
		if previous == messages.ViewFood && a.searchView.Session() != nil {
			return nil
		}
		return a.searchView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu:
		a.searchView.Close()
	case messages.ViewFood, messages.ViewHelp:
	}
	return nil
}

func (a *App) forwardToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewFood:
		a.foodView, cmd = a.foodView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyEsc || k.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewFood:
		return a.foodView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc           Back
  ctrl+c        Quit

Menu:
  j/k, ↑/↓      Navigate options
  enter         Select option
  /             Search foods
  q             Quit

Search:
  (type)        Search as you type
  ↑/↓           Highlight a result
  mouse         Hover highlights, click opens
  enter         Open the highlighted food
  esc           Clear the input, then back to menu

Food:
  ←/→           Serving -1g / +1g
  shift+←/→     Serving -10g / +10g
  s             Type a serving size
  r             Reset to the default serving
  /, esc        Search for another food

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.searchView.Close()
	p := tea.NewProgram(a, a.programOptions()...)
	_, err := p.Run()
	return err
}

// programOptions reports every mouse motion so result rows highlight on hover,
// not only while a button is held.
func (a *App) programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(a.ctx),
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.foodView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
