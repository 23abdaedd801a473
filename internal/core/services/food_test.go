package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

func TestFoodService_Get(t *testing.T) {
	svc := NewFoodService(memory.NewSeededFoodStore(), nil)
	ctx := context.Background()

	food, err := svc.Get(ctx, " apple ")
	require.NoError(t, err)
	assert.Equal(t, "Apple", food.Name)

	_, err = svc.Get(ctx, "dragonfruit")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFoodService_List(t *testing.T) {
	svc := NewFoodService(memory.NewSeededFoodStore(), nil)

	all, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, len(memory.SeedFoods()))

	some, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, some, 3)
}

func TestFoodService_Label_CanonicalServing(t *testing.T) {
	svc := NewFoodService(memory.NewSeededFoodStore(), nil)

	label, err := svc.Label(context.Background(), "pizza", 0)

	require.NoError(t, err)
	assert.Equal(t, 107, label.Nutrients.ServingSizeG)
	// 266 * 107 / 100 = 284.62
	assert.Equal(t, 285, label.Nutrients.Calories)
	assert.Equal(t, "(107g = 1 slice)", label.ServingNote())
}

func TestFoodService_Label_CustomAndClampedServing(t *testing.T) {
	svc := NewFoodService(memory.NewSeededFoodStore(), nil)
	ctx := context.Background()

	label, err := svc.Label(ctx, "apple", 200)
	require.NoError(t, err)
	assert.Equal(t, 104, label.Nutrients.Calories)

	label, err = svc.Label(ctx, "apple", 5000)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxServingG, label.Nutrients.ServingSizeG)

	label, err = svc.Label(ctx, "apple", -3)
	require.NoError(t, err)
	assert.Equal(t, domain.MinServingG, label.Nutrients.ServingSizeG)
}

func TestFoodService_Label_IncompleteProfile(t *testing.T) {
	store := memory.NewFoodStore(domain.Food{Name: "Mystery", Slug: "mystery"})
	svc := NewFoodService(store, nil)

	_, err := svc.Label(context.Background(), "mystery", 100)

	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
}

func TestFoodService_Import(t *testing.T) {
	store := memory.NewFoodStore()
	index := &stubIndex{}
	svc := NewFoodService(store, index)
	n := 0
	svc.SetIDGenerator(func() string {
		n++
		return "id-" + string(rune('0'+n))
	})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	saved, err := svc.Import(context.Background(), []domain.Food{
		{Name: "Greek Yogurt (plain)"},
		{ID: "keep", Name: "Oats", Slug: "rolled-oats"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	yogurt, err := store.Get(context.Background(), "greek-yogurt-plain")
	require.NoError(t, err)
	assert.Equal(t, "id-1", yogurt.ID)
	assert.Equal(t, fixed, yogurt.CreatedAt)
	assert.Equal(t, fixed, yogurt.UpdatedAt)

	oats, err := store.Get(context.Background(), "rolled-oats")
	require.NoError(t, err)
	assert.Equal(t, "keep", oats.ID)

	assert.Equal(t, []string{"greek-yogurt-plain", "rolled-oats"}, index.slugs)
}

func TestFoodService_Import_RejectsNameless(t *testing.T) {
	svc := NewFoodService(memory.NewFoodStore(), nil)

	saved, err := svc.Import(context.Background(), []domain.Food{
		{Name: "Rice"},
		{Name: "  "},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, saved)
}

func TestFoodService_Import_StoreFailure(t *testing.T) {
	svc := NewFoodService(failingFoodStore{}, nil)

	_, err := svc.Import(context.Background(), []domain.Food{{Name: "Rice"}})

	assert.ErrorIs(t, err, errStoreDown)
}

func TestFoodService_CompleteSlug(t *testing.T) {
	index := &stubIndex{}
	svc := NewFoodService(memory.NewSeededFoodStore(), index)
	require.NoError(t, svc.RebuildIndex(context.Background()))

	got, err := svc.CompleteSlug(context.Background(), "B", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "broccoli"}, got)

	none, err := NewFoodService(memory.NewSeededFoodStore(), nil).CompleteSlug(context.Background(), "b", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
