package food

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/services"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	partial := domain.Food{Name: "Mystery Stew", Slug: "mystery-stew"}
	store := memory.NewFoodStore(append(memory.SeedFoods(), partial)...)
	v := NewView(nil, nil, services.NewFoodService(store, nil))
	v.SetDimensions(100, 40)
	return v
}

// load runs the load command and feeds its result back.
func load(t *testing.T, v *View, slug string) {
	t.Helper()
	cmd := v.SetFood(slug)
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+left":
		return tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_LoadsCanonicalServing(t *testing.T) {
	v := newTestView(t)

	load(t, v, "pizza")

	require.NotNil(t, v.Food())
	assert.Equal(t, 107, v.Grams())
	label, err := v.Label()
	require.NoError(t, err)
	assert.Equal(t, 285, label.Nutrients.Calories)
	assert.Equal(t, "10.7g", label.Nutrients.Fats)

	view := v.View()
	assert.Contains(t, view, "Nutrition Facts")
	assert.Contains(t, view, "Serving Size 107g (107g = 1 slice)")
	assert.Contains(t, view, "Calories 285")
	assert.Contains(t, view, "Calories from Fat 96")
}

func TestView_LoadingBeforeResult(t *testing.T) {
	v := newTestView(t)

	require.NotNil(t, v.SetFood("pizza"))

	assert.Contains(t, v.View(), "Loading...")
}

func TestView_StaleLoadIgnored(t *testing.T) {
	v := newTestView(t)
	stale := v.SetFood("apple")
	load(t, v, "pizza")

	v.Update(stale())

	assert.Equal(t, "Pizza", v.Food().Name)
}

func TestView_SliderSteps(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")

	v.Update(key("right"))
	assert.Equal(t, 108, v.Grams())
	v.Update(key("left"))
	v.Update(key("left"))
	assert.Equal(t, 106, v.Grams())
	v.Update(key("shift+right"))
	assert.Equal(t, 116, v.Grams())
	v.Update(key("H"))
	assert.Equal(t, 106, v.Grams())

	label, err := v.Label()
	require.NoError(t, err)
	assert.Equal(t, 106, label.Nutrients.ServingSizeG)
}

func TestView_SliderClampsToRange(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")

	for i := 0; i < 20; i++ {
		v.Update(key("shift+left"))
	}
	assert.Equal(t, domain.MinServingG, v.Grams())

	for i := 0; i < 60; i++ {
		v.Update(key("shift+right"))
	}
	assert.Equal(t, domain.MaxSliderServingG, v.Grams())
}

func TestView_TypedServing(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  int
	}{
		{name: "plain number", typed: "200", want: 200},
		{name: "clamped high", typed: "5000", want: domain.MaxServingG},
		{name: "leading digits", typed: "150g", want: 150},
		{name: "no digits", typed: "abc", want: domain.MinServingG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(t)
			load(t, v, "pizza")

			v.Update(key("s"))
			require.True(t, v.Editing())
			for range 3 {
				v.Update(key("backspace"))
			}
			v.Update(key(tt.typed))
			v.Update(key("enter"))

			assert.False(t, v.Editing())
			assert.Equal(t, tt.want, v.Grams())
		})
	}
}

func TestView_TypedServing200(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")

	v.Update(key("s"))
	for range 3 {
		v.Update(key("backspace"))
	}
	v.Update(key("200"))
	v.Update(key("enter"))

	label, err := v.Label()
	require.NoError(t, err)
	assert.Equal(t, 532, label.Nutrients.Calories)
}

func TestView_EditCancel(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")

	v.Update(key("s"))
	v.Update(key("9"))
	_, cmd := v.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	assert.Equal(t, 107, v.Grams())
}

func TestView_ResetServing(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")
	v.Update(key("shift+right"))

	v.Update(key("r"))

	assert.Equal(t, 107, v.Grams())
	assert.Contains(t, v.View(), "Serving reset")
}

func TestView_ServingResetsOnFoodChange(t *testing.T) {
	v := newTestView(t)
	load(t, v, "pizza")
	v.Update(key("shift+right"))

	load(t, v, "apple")

	assert.Equal(t, 182, v.Grams())
}

func TestView_NotFound(t *testing.T) {
	v := newTestView(t)

	load(t, v, "kale")

	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Contains(t, v.View(), `Food "kale" not found.`)
}

func TestView_IncompleteProfile(t *testing.T) {
	v := newTestView(t)

	load(t, v, "mystery-stew")

	_, err := v.Label()
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
	assert.Contains(t, v.View(), "Nutrition data unavailable for this food.")
	assert.NotContains(t, v.View(), "Calories")
}

func TestView_BackReturnsToSearch(t *testing.T) {
	for _, k := range []string{"esc", "/"} {
		v := newTestView(t)
		load(t, v, "pizza")

		_, cmd := v.Update(key(k))

		require.NotNil(t, cmd, k)
		assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd(), k)
	}
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	assert.Nil(t, v.SetFood("pizza"))
	assert.ErrorIs(t, v.Err(), ErrNoFoodService)
}
