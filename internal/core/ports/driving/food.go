package driving

import (
	"context"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// FoodService provides food lookup and nutrition labels.
type FoodService interface {
	// Get retrieves a food by slug.
	Get(ctx context.Context, slug string) (*domain.Food, error)

	// List returns foods in catalog order. A limit of zero means all.
	List(ctx context.Context, limit int) ([]domain.Food, error)

	// Label computes the nutrition label of a food for servingG grams.
	// A servingG of zero uses the food's canonical serving.
	Label(ctx context.Context, slug string, servingG int) (domain.NutritionLabel, error)

	// Import saves foods, assigning missing IDs and slugs.
	// Returns the number of foods saved.
	Import(ctx context.Context, foods []domain.Food) (int, error)

	// CompleteSlug returns slugs starting with prefix.
	CompleteSlug(ctx context.Context, prefix string, limit int) ([]string, error)
}
