package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

func TestFoodCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(foodCmd.Commands()))
	for _, c := range foodCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"show", "list", "import", "open"}, names)
}

func TestFoodShow_DefaultServing(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "show", "pizza")

	require.NoError(t, err)
	assert.Contains(t, out, "Pizza")
	assert.Contains(t, out, "Nutrition Facts")
	assert.Contains(t, out, "Serving Size 107g (107g = 1 slice)")
	assert.Contains(t, out, "Calories 285")
	assert.Contains(t, out, "Calories from Fat 96")
	assert.Contains(t, out, "Total Fat 10.7g")
	assert.Contains(t, out, domain.LabelFootnote)
}

func TestFoodShow_Serving(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name    string
		serving string
		want    string
	}{
		{name: "scaled", serving: "200", want: "Calories 532"},
		{name: "clamped", serving: "5000", want: "Serving Size 1000g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "food", "show", "--serving", tt.serving, "pizza")

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFoodShow_NegativeServing(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "food", "show", "--serving", "-5", "pizza")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFoodShow_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "show", "--json", "--serving", "100", "apple")
	require.NoError(t, err)

	var label domain.NutritionLabel
	require.NoError(t, json.Unmarshal([]byte(out), &label))
	assert.Equal(t, "apple", label.FoodSlug)
	assert.Equal(t, 52, label.Nutrients.Calories)
	assert.Equal(t, "0.2g", label.Nutrients.Fats)
}

func TestFoodShow_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "food", "show", "unicorn")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `food "unicorn" not found`)
}

func TestFoodShow_IncompleteProfile(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, env.store.Save(t.Context(), &domain.Food{Name: "Mystery Stew", Slug: "mystery-stew"}))

	_, err := execute(t, "food", "show", "mystery-stew")

	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
}

func TestFoodList(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Foods (8):")
	assert.Contains(t, out, "chicken-breast")
	assert.Contains(t, out, "Vegetables")
}

func TestFoodList_Limit(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "list", "--limit", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Foods (2):")
}

func TestFoodImport(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "foods.json")
	data := `[{"name": "Greek Yogurt", "category": "Dairy",
		"caloriesPer100g": 59, "proteinPer100g": 10, "carbsPer100g": 3.6,
		"fatsPer100g": 0.4, "fiberPer100g": 0, "sugarPer100g": 3.2, "sodiumPer100g": 36}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := execute(t, "food", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 foods.")
	food, err := env.store.Get(t.Context(), "greek-yogurt")
	require.NoError(t, err)
	assert.Equal(t, "Greek Yogurt", food.Name)
}

func TestFoodImport_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "food", "import", filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestFoodOpen(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "food", "open", "banana")

	require.NoError(t, err)
	assert.Contains(t, out, "Opened Banana")
	assert.Equal(t, []string{"/foods/banana"}, env.navigator.Targets())
}

func TestFoodOpen_NotFound(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "food", "open", "unicorn")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.navigator.Targets())
}

func TestCompleteFoodSlug(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	slugs, directive := completeFoodSlug(cmd, nil, "b")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.ElementsMatch(t, []string{"banana", "broccoli"}, slugs)

	slugs, _ = completeFoodSlug(cmd, []string{"banana"}, "b")
	assert.Empty(t, slugs)
}

func TestFoodCmds_NotConfigured(t *testing.T) {
	SetServices(nil)

	for _, args := range [][]string{
		{"food", "show", "pizza"},
		{"food", "list"},
		{"food", "open", "pizza"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errFoodNotConfigured, args)
	}
}
