package driven

import (
	"context"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// FoodStore provides access to the food catalog.
type FoodStore interface {
	// List returns all foods in catalog order.
	List(ctx context.Context) ([]domain.Food, error)

	// Get retrieves a food by slug. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, slug string) (*domain.Food, error)

	// Save creates or replaces a food, keyed by slug.
	// Read-only catalogs return domain.ErrInvalidInput.
	Save(ctx context.Context, food *domain.Food) error

	// Delete removes a food by slug. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, slug string) error

	// Count returns the number of foods.
	Count(ctx context.Context) (int, error)
}
