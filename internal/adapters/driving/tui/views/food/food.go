// Package food provides the nutrition label view for the TUI.
package food

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

const (
	labelWidth  = 40
	sliderWidth = 30
)

// ErrNoFoodService indicates that no food service was provided.
var ErrNoFoodService = errors.New("food service is required")

// View shows one food with an adjustable serving and its nutrition label.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	servingIn   *input.Field
	statusbar   *status.Bar
	foodService driving.FoodService
	ctx         context.Context

	slug     string
	food     *domain.Food
	serving  domain.ServingAdjustment
	label    domain.NutritionLabel
	labelErr error
	loading  bool
	editing  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new food view.
func NewView(s *styles.Styles, km *keymap.KeyMap, foodService driving.FoodService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetMode(status.ModeFood)

	return &View{
		styles:      s,
		keymap:      km,
		servingIn:   input.NewServingInput(s),
		statusbar:   bar,
		foodService: foodService,
		ctx:         context.Background(),
		serving:     domain.NewServingAdjustment(nil),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetFood switches the view to slug and returns the command loading it.
func (v *View) SetFood(slug string) tea.Cmd {
	v.slug = slug
	v.food = nil
	v.err = nil
	v.labelErr = nil
	v.editing = false
	v.servingIn.Blur()
	v.statusbar.SetMessage("")

	if v.foodService == nil {
		v.err = ErrNoFoodService
		return nil
	}
	v.loading = true

	svc, ctx := v.foodService, v.ctx
	return func() tea.Msg {
		food, err := svc.Get(ctx, slug)
		return messages.FoodLoaded{Slug: slug, Food: food, Err: err}
	}
}

// Update handles messages for the food view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FoodLoaded:
		if msg.Slug != v.slug {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.food = msg.Food
		v.serving.Reset(v.food)
		v.recompute()
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	if keymap.Matches(k, v.keymap.Back) || keymap.Matches(k, v.keymap.Search) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}
	if v.food == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.MuchSmaller):
		v.serving.Step(-10)
	case keymap.Matches(k, v.keymap.MuchLarger):
		v.serving.Step(10)
	case keymap.Matches(k, v.keymap.Smaller):
		v.serving.Step(-1)
	case keymap.Matches(k, v.keymap.Larger):
		v.serving.Step(1)
	case keymap.Matches(k, v.keymap.ResetServing):
		v.serving.Reset(v.food)
		v.statusbar.SetMessage("Serving reset")
	case keymap.Matches(k, v.keymap.EditServing):
		v.editing = true
		v.servingIn.SetValue(strconv.Itoa(v.serving.Grams()))
		return v, v.servingIn.Focus()
	default:
		return v, nil
	}
	v.recompute()
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Select):
		v.serving.ParseInput(v.servingIn.Value())
		v.stopEditing()
		v.recompute()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Back):
		v.stopEditing()
		return v, nil
	}

	var cmd tea.Cmd
	v.servingIn, cmd, _ = v.servingIn.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.servingIn.Blur()
}

func (v *View) recompute() {
	if v.food == nil {
		return
	}
	v.label, v.labelErr = domain.NewNutritionLabel(v.food, v.serving.Grams())
}

// View renders the food view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	switch {
	case v.err != nil:
		sections = append(sections, v.renderError())
	case v.loading || v.food == nil:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	default:
		sections = append(sections, v.renderFood()...)
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderError() string {
	if errors.Is(v.err, domain.ErrNotFound) {
		return v.styles.Error.Render(fmt.Sprintf("Food %q not found.", v.slug))
	}
	return v.styles.Error.Render("Error: " + v.err.Error())
}

func (v *View) renderFood() []string {
	out := []string{v.styles.Title.Render(v.food.Name)}
	if v.food.Description != nil && *v.food.Description != "" {
		out = append(out, v.styles.Subtitle.Render(*v.food.Description))
	}
	if v.food.ImageURL != "" {
		out = append(out, v.styles.Muted.Render(v.food.ImageURL))
	}
	out = append(out, "")

	if v.editing {
		out = append(out, v.servingIn.View())
	} else {
		out = append(out, v.styles.Normal.Render(fmt.Sprintf("Serving: %dg", v.serving.Grams())))
	}
	out = append(out, v.renderSlider(), "")

	if v.labelErr != nil {
		out = append(out, v.styles.Error.Render("Nutrition data unavailable for this food."))
		return out
	}
	return append(out, v.renderLabel())
}

// renderSlider draws the serving on the slider track.
func (v *View) renderSlider() string {
	g := min(v.serving.Grams(), domain.MaxSliderServingG)
	pos := (g - domain.MinServingG) * (sliderWidth - 1) / (domain.MaxSliderServingG - domain.MinServingG)
	track := strings.Repeat("━", pos) + "●" + strings.Repeat("─", sliderWidth-1-pos)
	return v.styles.Muted.Render(fmt.Sprintf("%dg ", domain.MinServingG)) +
		v.styles.Title.Render(track) +
		v.styles.Muted.Render(fmt.Sprintf(" %dg", domain.MaxSliderServingG))
}

func (v *View) renderLabel() string {
	n := v.label.Nutrients
	heavy := strings.Repeat("━", labelWidth)
	thin := strings.Repeat("─", labelWidth)
	bold := v.styles.Bold

	serving := fmt.Sprintf("Serving Size %dg", n.ServingSizeG)
	if note := v.label.ServingNote(); note != "" {
		serving += " " + note
	}

	lines := []string{
		bold.Render("Nutrition Facts"),
		serving,
		heavy,
		bold.Render("Amount Per Serving"),
		spread(bold.Render(fmt.Sprintf("Calories %d", n.Calories)),
			fmt.Sprintf("Calories from Fat %d", n.CaloriesFromFat)),
		heavy,
		spread("", bold.Render("% Daily Value*")),
	}
	for _, row := range v.label.Rows() {
		name := row.Name
		if row.Bold {
			name = bold.Render(name)
		}
		left := name + " " + row.Amount
		if row.Indent {
			left = "  " + left
		}
		lines = append(lines, thin, spread(left, bold.Render(row.DailyValue)))
	}
	lines = append(lines, heavy,
		lipgloss.NewStyle().Width(labelWidth).Render(domain.LabelFootnote))

	return v.styles.Label.Render(strings.Join(lines, "\n"))
}

// spread places left and right at the edges of one label line.
func spread(left, right string) string {
	gap := labelWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.servingIn.SetWidth(min(width, 40))
	v.statusbar.SetWidth(width)
}

// Slug returns the displayed food slug.
func (v *View) Slug() string {
	return v.slug
}

// Food returns the loaded food, or nil.
func (v *View) Food() *domain.Food {
	return v.food
}

// Grams returns the current serving size.
func (v *View) Grams() int {
	return v.serving.Grams()
}

// Label returns the label for the current serving.
func (v *View) Label() (domain.NutritionLabel, error) {
	return v.label, v.labelErr
}

// Editing reports whether the serving input has focus.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}
