package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{name: "quit", binding: km.Quit, keys: []string{"ctrl+c"}},
		{name: "back", binding: km.Back, keys: []string{"esc"}},
		{name: "up", binding: km.Up, keys: []string{"up"}},
		{name: "down", binding: km.Down, keys: []string{"down"}},
		{name: "select", binding: km.Select, keys: []string{"enter"}},
		{name: "smaller", binding: km.Smaller, keys: []string{"left", "h"}},
		{name: "larger", binding: km.Larger, keys: []string{"right", "l"}},
		{name: "much smaller", binding: km.MuchSmaller, keys: []string{"shift+left"}},
		{name: "much larger", binding: km.MuchLarger, keys: []string{"shift+right"}},
		{name: "reset", binding: km.ResetServing, keys: []string{"r"}},
		{name: "search", binding: km.Search, keys: []string{"/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
		})
	}
}

func TestDefaultKeyMap_SearchKeysDoNotShadowTyping(t *testing.T) {
	km := DefaultKeyMap()

	// Letters must reach the search input.
	for _, b := range []key.Binding{km.Up, km.Down, km.Select, km.Back, km.Quit} {
		for _, k := range b.Keys() {
			assert.Greater(t, len(k), 1, "binding %q would swallow a typed letter", k)
		}
	}
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.ResultsHelp(), 4)
	assert.Len(t, km.FoodHelp(), 6)
	assert.Len(t, km.FullHelp(), 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("enter", km.Select))
	assert.True(t, Matches("H", km.MuchSmaller))
	assert.False(t, Matches("x", km.Select))
}
