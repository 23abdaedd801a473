// Package menu provides the start screen of the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
)

// Item is one entry of the start screen. An item without a view quits.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

var defaultItems = []Item{
	{Label: "Search foods", Description: "Find a food and open its nutrition label", View: messages.ViewSearch},
	{Label: "Search settings", Description: "Grouping, presentation and timing of the search box", View: messages.ViewSettings},
	{Label: "Help", Description: "Keys of every screen", View: messages.ViewHelp},
	{Label: "Quit", Quit: true},
}

// View is the start screen.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the start screen.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		items:  defaultItems,
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle. The menu has nothing to load.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "ctrl+p":
			v.selected = max(v.selected-1, 0)
		case "down", "j", "ctrl+n":
			v.selected = min(v.selected+1, len(v.items)-1)
		case "enter":
			return v, v.activate(v.items[v.selected])
		case "/":
			return v, v.activate(v.items[0])
		case "q":
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *View) activate(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("nutri"),
		v.styles.Subtitle.Render("Food search and nutrition labels"),
		"",
	}
	for i, item := range v.items {
		if i != v.selected {
			lines = append(lines, "  "+v.styles.Normal.Render(item.Label))
			continue
		}
		line := v.styles.Selected.Render("> " + item.Label)
		if item.Description != "" && v.width >= 60 {
			line += "  " + v.styles.Muted.Render(item.Description)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [/] Search  [q] Quit"))

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the highlighted item index.
func (v *View) Selected() int {
	return v.selected
}
