package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

// Ensure FoodService implements the interface.
var _ driving.FoodService = (*FoodService)(nil)

// FoodService provides food lookup, labels and imports.
type FoodService struct {
	store driven.FoodStore
	index driven.SlugIndex
	newID func() string
	now   func() time.Time
}

// NewFoodService creates a new food service.
// The index parameter is optional (can be nil).
func NewFoodService(store driven.FoodStore, index driven.SlugIndex) *FoodService {
	return &FoodService{
		store: store,
		index: index,
		now:   time.Now,
	}
}

// SetIDGenerator sets the generator used for imported foods without an ID.
// Without one, such foods keep an empty ID and are identified by slug.
func (s *FoodService) SetIDGenerator(newID func() string) {
	s.newID = newID
}

// Get retrieves a food by slug.
func (s *FoodService) Get(ctx context.Context, slug string) (*domain.Food, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("slug is required: %w", domain.ErrInvalidInput)
	}
	food, err := s.store.Get(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get food %q: %w", slug, err)
	}
	return food, nil
}

// List returns foods in catalog order.
func (s *FoodService) List(ctx context.Context, limit int) ([]domain.Food, error) {
	foods, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}
	return foods, nil
}

// Label computes the nutrition label of a food. A servingG of zero uses
// the food's canonical serving; other values are clamped to the allowed range.
func (s *FoodService) Label(ctx context.Context, slug string, servingG int) (domain.NutritionLabel, error) {
	food, err := s.Get(ctx, slug)
	if err != nil {
		return domain.NutritionLabel{}, err
	}

	serving := domain.NewServingAdjustment(food)
	if servingG != 0 {
		serving.Set(servingG)
	}

	label, err := domain.NewNutritionLabel(food, serving.Grams())
	if err != nil {
		return domain.NutritionLabel{}, fmt.Errorf("label for %q: %w", slug, err)
	}
	logger.Debug("label %s at %dg: %d kcal", slug, serving.Grams(), label.Nutrients.Calories)
	return label, nil
}

// Import saves foods, deriving missing slugs from names and assigning
// missing IDs. The first invalid food aborts the import.
func (s *FoodService) Import(ctx context.Context, foods []domain.Food) (int, error) {
	logger.Section("Food Import")

	saved := 0
	for i := range foods {
		food := foods[i]
		if strings.TrimSpace(food.Name) == "" {
			return saved, fmt.Errorf("food %d: name is required: %w", i, domain.ErrInvalidInput)
		}
		if food.Slug == "" {
			food.Slug = domain.Slugify(food.Name)
		}
		if food.Slug == "" {
			return saved, fmt.Errorf("food %d: cannot derive slug from %q: %w", i, food.Name, domain.ErrInvalidInput)
		}
		if food.ID == "" && s.newID != nil {
			food.ID = s.newID()
		}
		now := s.now()
		if food.CreatedAt.IsZero() {
			food.CreatedAt = now
		}
		food.UpdatedAt = now

		if err := s.store.Save(ctx, &food); err != nil {
			return saved, fmt.Errorf("save food %q: %w", food.Slug, err)
		}
		logger.Debug("imported %s (%s)", food.Slug, food.ID)
		saved++
	}

	if err := s.RebuildIndex(ctx); err != nil {
		logger.Warn("slug index rebuild failed: %v", err)
	}
	return saved, nil
}

// RebuildIndex reloads the slug index from the catalog.
func (s *FoodService) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	foods, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list foods: %w", err)
	}
	slugs := make([]string, 0, len(foods))
	for i := range foods {
		slugs = append(slugs, foods[i].Slug)
	}
	s.index.Rebuild(slugs)
	return nil
}

// CompleteSlug returns slugs starting with prefix.
func (s *FoodService) CompleteSlug(_ context.Context, prefix string, limit int) ([]string, error) {
	if s.index == nil {
		return []string{}, nil
	}
	return s.index.Complete(strings.ToLower(prefix), limit), nil
}
