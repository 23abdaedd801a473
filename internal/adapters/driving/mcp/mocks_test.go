package mcp

import (
	"context"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) OpenSession(
	_ context.Context, _ domain.SessionConfig, _ ...driving.SessionOption,
) driving.SearchSession {
	return nil
}

// mockFoodService is a mock implementation of driving.FoodService.
type mockFoodService struct {
	foods    []domain.Food
	err      error
	labelErr error
	serving  int
}

func (m *mockFoodService) Get(_ context.Context, slug string) (*domain.Food, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.foods {
		if m.foods[i].Slug == slug {
			return &m.foods[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFoodService) List(_ context.Context, _ int) ([]domain.Food, error) {
	return m.foods, m.err
}

func (m *mockFoodService) Label(ctx context.Context, slug string, servingG int) (domain.NutritionLabel, error) {
	m.serving = servingG
	if m.labelErr != nil {
		return domain.NutritionLabel{}, m.labelErr
	}
	food, err := m.Get(ctx, slug)
	if err != nil {
		return domain.NutritionLabel{}, err
	}
	if servingG == 0 {
		servingG = int(food.ServingSizeG)
	}
	return domain.NewNutritionLabel(food, servingG)
}

func (m *mockFoodService) Import(_ context.Context, foods []domain.Food) (int, error) {
	return len(foods), m.err
}

func (m *mockFoodService) CompleteSlug(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, m.err
}

func pizzaFood() domain.Food {
	return domain.Food{
		Name:     "Pizza",
		Slug:     "pizza",
		Category: domain.String("Food"),
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
	}
}

func newTestServer(search *mockSearchService, food *mockFoodService) (*Server, error) {
	return NewServer(&Ports{Search: search, Food: food})
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) { return m.settings, nil }

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) Validate() error { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
