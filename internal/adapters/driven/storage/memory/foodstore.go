package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
)

// Ensure FoodStore implements the interface.
var _ driven.FoodStore = (*FoodStore)(nil)

// FoodStore is an in-memory implementation of driven.FoodStore.
// Foods are listed in insertion order.
type FoodStore struct {
	mu    sync.RWMutex
	foods map[string]domain.Food
	order []string
}

// NewFoodStore creates a store holding foods.
func NewFoodStore(foods ...domain.Food) *FoodStore {
	s := &FoodStore{foods: make(map[string]domain.Food, len(foods))}
	for i := range foods {
		s.put(foods[i])
	}
	return s
}

// NewSeededFoodStore creates a store holding the demo list.
func NewSeededFoodStore() *FoodStore {
	return NewFoodStore(SeedFoods()...)
}

func (s *FoodStore) put(food domain.Food) {
	if _, exists := s.foods[food.Slug]; !exists {
		s.order = append(s.order, food.Slug)
	}
	s.foods[food.Slug] = food
}

// List returns all foods in insertion order.
func (s *FoodStore) List(_ context.Context) ([]domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	foods := make([]domain.Food, 0, len(s.order))
	for _, slug := range s.order {
		foods = append(foods, s.foods[slug])
	}
	return foods, nil
}

// Get retrieves a food by slug.
func (s *FoodStore) Get(_ context.Context, slug string) (*domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	food, ok := s.foods[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &food, nil
}

// Save creates or replaces a food.
func (s *FoodStore) Save(_ context.Context, food *domain.Food) error {
	if food.Slug == "" {
		return fmt.Errorf("food slug is required: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(*food)
	return nil
}

// Delete removes a food by slug.
func (s *FoodStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.foods[slug]; !ok {
		return domain.ErrNotFound
	}
	delete(s.foods, slug)
	for i, v := range s.order {
		if v == slug {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of foods.
func (s *FoodStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods), nil
}
