package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func pizza() *domain.Food {
	attr := 208
	return &domain.Food{
		ID:          "food-pizza",
		Name:        "Pizza",
		Slug:        "pizza",
		Description: domain.String("Cheese pizza"),
		Category:    domain.String("Food"),
		Nutrients: domain.NutrientValues{
			CaloriesPer100g: domain.Float(266),
			ProteinPer100g:  domain.Float(11),
			CarbsPer100g:    domain.Float(33),
			FatsPer100g:     domain.Float(10),
			FiberPer100g:    domain.Float(2.3),
			SugarPer100g:    domain.Float(3.6),
			SodiumPer100g:   domain.Float(598),
		},
		ServingSizeG:    107,
		ServingSizeUnit: "1 slice",
		ImageURL:        "https://images.example.com/pizza.jpg?w=800&h=600",
		FullNutrients:   []domain.FullNutrient{{AttrID: &attr, Value: domain.Float(266)}},
		AltMeasures: []domain.AltMeasure{
			{Measure: "slice", Qty: domain.Float(1), ServingWeight: domain.Float(107)},
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "foods.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.FoodStore().Save(ctx, pizza()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	count, err := second.FoodStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFoodStore_SaveAndGet(t *testing.T) {
	foods := setupTestStore(t).FoodStore()
	ctx := context.Background()

	require.NoError(t, foods.Save(ctx, pizza()))

	got, err := foods.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Equal(t, "food-pizza", got.ID)
	assert.Equal(t, "Pizza", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Cheese pizza", *got.Description)
	require.NotNil(t, got.Nutrients.FiberPer100g)
	assert.Equal(t, 2.3, *got.Nutrients.FiberPer100g)
	assert.Equal(t, 107.0, got.ServingSizeG)
	assert.Equal(t, "1 slice", got.ServingSizeUnit)
	require.Len(t, got.FullNutrients, 1)
	assert.Equal(t, 208, *got.FullNutrients[0].AttrID)
	require.Len(t, got.AltMeasures, 1)
	assert.Equal(t, "slice", got.AltMeasures[0].Measure)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestFoodStore_NullNutrientsReadBackAsUnknown(t *testing.T) {
	foods := setupTestStore(t).FoodStore()
	ctx := context.Background()

	food := pizza()
	food.Nutrients.SodiumPer100g = nil
	food.Description = nil
	require.NoError(t, foods.Save(ctx, food))

	got, err := foods.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Nil(t, got.Nutrients.SodiumPer100g)
	assert.Nil(t, got.Description)

	_, err = got.Profile()
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
}

func TestFoodStore_SaveAssignsID(t *testing.T) {
	foods := setupTestStore(t).FoodStore()
	ctx := context.Background()

	food := pizza()
	food.ID = ""
	require.NoError(t, foods.Save(ctx, food))

	assert.NotEmpty(t, food.ID)
	got, err := foods.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.Equal(t, food.ID, got.ID)
}

func TestFoodStore_SaveRequiresSlug(t *testing.T) {
	foods := setupTestStore(t).FoodStore()

	err := foods.Save(context.Background(), &domain.Food{Name: "Nameless"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFoodStore_UpsertKeepsOrder(t *testing.T) {
	foods := setupTestStore(t).FoodStore()
	ctx := context.Background()

	require.NoError(t, foods.Save(ctx, pizza()))
	require.NoError(t, foods.Save(ctx, &domain.Food{ID: "food-apple", Name: "Apple", Slug: "apple"}))

	updated := pizza()
	updated.Name = "Pizza Margherita"
	updated.UpdatedAt = time.Now().UTC().Add(time.Hour)
	require.NoError(t, foods.Save(ctx, updated))

	list, err := foods.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Pizza Margherita", list[0].Name)
	assert.Equal(t, "apple", list[1].Slug)
}

func TestFoodStore_Get_NotFound(t *testing.T) {
	foods := setupTestStore(t).FoodStore()

	_, err := foods.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFoodStore_Delete(t *testing.T) {
	foods := setupTestStore(t).FoodStore()
	ctx := context.Background()
	require.NoError(t, foods.Save(ctx, pizza()))

	require.NoError(t, foods.Delete(ctx, "pizza"))
	assert.ErrorIs(t, foods.Delete(ctx, "pizza"), domain.ErrNotFound)

	count, err := foods.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFoodStore_ListEmpty(t *testing.T) {
	foods := setupTestStore(t).FoodStore()

	list, err := foods.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, list)
}
