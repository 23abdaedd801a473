package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// --- Mock implementations ---

var errStoreDown = errors.New("store unavailable")

// failingFoodStore implements driven.FoodStore and fails every call.
type failingFoodStore struct{}

func (failingFoodStore) List(context.Context) ([]domain.Food, error) { return nil, errStoreDown }
func (failingFoodStore) Get(context.Context, string) (*domain.Food, error) {
	return nil, errStoreDown
}
func (failingFoodStore) Save(context.Context, *domain.Food) error { return errStoreDown }
func (failingFoodStore) Delete(context.Context, string) error     { return errStoreDown }
func (failingFoodStore) Count(context.Context) (int, error)        { return 0, errStoreDown }

// recordingNavigator implements driven.Navigator and records targets.
type recordingNavigator struct {
	mu      sync.Mutex
	targets []string
	err     error
}

func (n *recordingNavigator) NavigateTo(_ context.Context, target string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
	return n.err
}

func (n *recordingNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

// stubIndex implements driven.SlugIndex with a sorted slice.
type stubIndex struct {
	slugs []string
}

func (s *stubIndex) Rebuild(slugs []string) {
	s.slugs = append([]string(nil), slugs...)
}

func (s *stubIndex) Complete(prefix string, limit int) []string {
	var out []string
	for _, slug := range s.slugs {
		if len(slug) >= len(prefix) && slug[:len(prefix)] == prefix {
			out = append(out, slug)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// candidateList is a fixed candidate source that counts calls.
type candidateList struct {
	mu      sync.Mutex
	results []domain.SearchResult
	err     error
	queries []string
}

func (c *candidateList) FetchCandidates(_ context.Context, query string) ([]domain.SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

func (c *candidateList) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func result(id, title string, category *string) domain.SearchResult {
	target := domain.FoodRoute(id)
	return domain.SearchResult{ID: id, Title: title, Category: category, Target: &target}
}

func pizzaPasta() []domain.SearchResult {
	food := domain.String("Food")
	return []domain.SearchResult{
		result("1", "Pizza", food),
		result("2", "Pasta", food),
	}
}
