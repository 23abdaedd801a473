// Package search provides the interactive search box view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

const title = "Food search"

// View is the search box: an input, the grouped result list and a status
// bar, all driven by one search session.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	searchService   driving.SearchService
	settingsService driving.SettingsService
	ctx             context.Context

	session driving.SearchSession
	cfg     domain.SessionConfig
	state   domain.SessionState

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new search view. settingsService may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	settingsService driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	cfg := domain.DefaultSessionConfig()

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewSearchInput(s, cfg.Placeholder),
		list:            list.NewResultList(s),
		statusbar:       status.NewBar(s, km),
		searchService:   searchService,
		settingsService: settingsService,
		ctx:             context.Background(),
		cfg:             cfg,
		state:           domain.SessionState{SelectionIndex: -1, Status: domain.SearchStatusIdle},
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init opens a fresh session and starts listening to it.
func (v *View) Init() tea.Cmd {
	if err := v.Open(); err != nil {
		v.err = err
		return nil
	}
	return tea.Batch(v.input.Init(), v.waitForChange())
}

// Open closes any previous session and opens a new one with the current
// settings. The input and results start empty.
func (v *View) Open() error {
	v.Close()
	if v.searchService == nil {
		return ErrNoSearchService
	}

	v.cfg = v.loadConfig()
	v.input.SetPlaceholder(v.cfg.Placeholder)
	v.input.Reset()
	v.input.Focus()
	v.list.SetConfig(v.cfg)
	v.statusbar.Clear()
	v.err = nil

	v.session = v.searchService.OpenSession(v.ctx, v.cfg, driving.WithSelectHandler(func(r domain.SearchResult) {
		logger.Debug("tui: selected %s", r.ID)
	}))
	v.refresh()
	return nil
}

func (v *View) loadConfig() domain.SessionConfig {
	if v.settingsService == nil {
		return domain.DefaultSessionConfig()
	}
	settings, err := v.settingsService.Get()
	if err != nil {
		logger.Warn("loading search settings: %v", err)
		return domain.DefaultSessionConfig()
	}
	return settings.Search.SessionConfig().Normalised()
}

// Close ends the current session, if any.
func (v *View) Close() {
	if v.session != nil {
		v.session.Close()
		v.session = nil
	}
}

// waitForChange blocks on the session's change channel and reports the
// next change as a message. It yields nothing once the session closes.
func (v *View) waitForChange() tea.Cmd {
	sess := v.session
	if sess == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-sess.Changes(); !ok {
			return nil
		}
		return messages.SessionChanged{SessionID: sess.ID()}
	}
}

func (v *View) refresh() {
	if v.session == nil {
		return
	}
	v.state = v.session.Snapshot()
	v.list.SetState(v.state)
	v.statusbar.SetSnapshot(v.state)
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionChanged:
		if v.session == nil || msg.SessionID != v.session.ID() {
			return v, nil
		}
		v.refresh()
		return v, v.waitForChange()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v.handleMouse(msg)
	}

	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.session == nil {
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, changeView(messages.ViewMenu)
		}
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.session.MoveDown()
		v.refresh()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Up):
		v.session.MoveUp()
		v.refresh()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Select):
		return v, v.enter()

	case keymap.Matches(msg.String(), v.keymap.Back):
		if v.input.Value() == "" && v.state.SelectionIndex < 0 {
			return v, changeView(messages.ViewMenu)
		}
		v.input.Reset()
		v.session.Escape()
		v.err = nil
		v.statusbar.SetMessage("")
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.session.Input(v.input.Value())
		v.refresh()
	}
	return v, cmd
}

// handleMouse maps pointer motion onto Hover and a left click onto Enter.
func (v *View) handleMouse(msg tea.MouseMsg) (*View, tea.Cmd) {
	if v.session == nil {
		return v, nil
	}
	index := v.list.IndexAt(msg.Y - v.listTop())
	if index < 0 {
		return v, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		v.session.Hover(index)
		v.refresh()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.session.Hover(index)
		v.refresh()
		return v, v.enter()
	}
	return v, nil
}

// listTop is the screen row of the first list content line.
func (v *View) listTop() int {
	header := lipgloss.Height(v.styles.Title.Render(title))
	return header + 1 + lipgloss.Height(v.input.View()) + 1 + v.list.ContentOffset()
}

// enter selects the highlighted result and turns it into a FoodSelected
// message when it points at a food.
func (v *View) enter() tea.Cmd {
	sess := v.session
	ctx := v.ctx
	return func() tea.Msg {
		result, err := sess.Enter(ctx)
		switch {
		case errors.Is(err, domain.ErrNoSelection):
			return nil
		case err != nil:
			return messages.ErrorOccurred{Err: err}
		}
		if result.Target != nil {
			if slug, ok := domain.ParseFoodRoute(*result.Target); ok {
				return messages.FoodSelected{Slug: slug}
			}
		}
		return messages.ErrorOccurred{Err: fmt.Errorf("open %q: %w", result.Title, domain.ErrNoTarget)}
	}
}

// Reset discards the session state after a completed selection.
func (v *View) Reset() {
	v.input.Reset()
	v.err = nil
	v.statusbar.Clear()
	if v.session != nil {
		v.session.Reset()
		v.refresh()
	}
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections,
		v.styles.Title.Render(title), "",
		v.input.View(), "",
	)

	if listView := v.list.View(); listView != "" {
		sections = append(sections, listView)
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// State returns the last session snapshot.
func (v *View) State() domain.SessionState {
	return v.state
}

// Config returns the configuration of the open session.
func (v *View) Config() domain.SessionConfig {
	return v.cfg
}

// Session returns the open session, or nil.
func (v *View) Session() driving.SearchSession {
	return v.session
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
