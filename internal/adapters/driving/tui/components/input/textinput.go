// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and the input border.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewSearchInput creates the search box input.
func NewSearchInput(s *styles.Styles, placeholder string) *Field {
	return newField(s, "Search: ", placeholder, 256)
}

// NewServingInput creates the numeric serving size input.
func NewServingInput(s *styles.Styles) *Field {
	f := newField(s, "Serving (g): ", "100", 6)
	f.textinput.Blur()
	return f
}

func newField(s *styles.Styles, label, placeholder string, limit int) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = limit
	ti.Width = 50

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. changed reports whether the value moved.
func (f *Field) Update(msg tea.Msg) (field *Field, cmd tea.Cmd, changed bool) {
	before := f.textinput.Value()
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd, f.textinput.Value() != before
}

// View renders the input.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label)
	box := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Placeholder returns the prompt shown while the input is empty.
func (f *Field) Placeholder() string {
	return f.textinput.Placeholder
}

// SetPlaceholder replaces the prompt.
func (f *Field) SetPlaceholder(p string) {
	f.textinput.Placeholder = p
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - lipgloss.Width(f.label) - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
