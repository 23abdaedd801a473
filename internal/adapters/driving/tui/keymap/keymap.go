// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view, or clears the search input.
	Back key.Binding

	// Up moves the highlight up.
	Up key.Binding

	// Down moves the highlight down.
	Down key.Binding

	// Select opens the highlighted result.
	Select key.Binding

	// Smaller shrinks the serving by one gram.
	Smaller key.Binding

	// Larger grows the serving by one gram.
	Larger key.Binding

	// MuchSmaller shrinks the serving by ten grams.
	MuchSmaller key.Binding

	// MuchLarger grows the serving by ten grams.
	MuchLarger key.Binding

	// EditServing focuses the serving size input.
	EditServing key.Binding

	// ResetServing returns to the canonical serving.
	ResetServing key.Binding

	// Search opens the search box from a food.
	Search key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-1g"),
		),
		Larger: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+1g"),
		),
		MuchSmaller: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←", "-10g"),
		),
		MuchLarger: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("shift+→", "+10g"),
		),
		EditServing: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "serving"),
		),
		ResetServing: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ResultsHelp returns keybindings shown while results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FoodHelp returns keybindings of the food view.
func (k *KeyMap) FoodHelp() []key.Binding {
	return []key.Binding{k.Smaller, k.Larger, k.EditServing, k.ResetServing, k.Search, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Smaller, k.Larger, k.MuchSmaller, k.MuchLarger},
		{k.EditServing, k.ResetServing, k.Search},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
