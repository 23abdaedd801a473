package services

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

// Ensure SearchService implements the interfaces.
var (
	_ driving.SearchService  = (*SearchService)(nil)
	_ driven.CandidateSource = (*SearchService)(nil)
)

// SearchService searches the food catalog.
type SearchService struct {
	store     driven.FoodStore
	navigator driven.Navigator
	newID     func() string
	seq       atomic.Uint64
}

// NewSearchService creates a new search service.
// The navigator parameter is optional (can be nil).
func NewSearchService(store driven.FoodStore, navigator driven.Navigator) *SearchService {
	s := &SearchService{
		store:     store,
		navigator: navigator,
	}
	s.newID = func() string {
		return "session-" + strconv.FormatUint(s.seq.Add(1), 10)
	}
	return s
}

// SetNavigator sets the navigator used by sessions without a select handler.
func (s *SearchService) SetNavigator(navigator driven.Navigator) {
	s.navigator = navigator
}

// SetIDGenerator sets the generator of session ids.
func (s *SearchService) SetIDGenerator(newID func() string) {
	if newID != nil {
		s.newID = newID
	}
}

// FetchCandidates returns every catalog food as a search result.
// Filtering is left to the matcher so category matches are not lost.
func (s *SearchService) FetchCandidates(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if s.store == nil {
		return nil, domain.ErrSearchUnavailable
	}
	foods, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w: %w", domain.ErrFetchFailed, err)
	}

	results := make([]domain.SearchResult, 0, len(foods))
	for i := range foods {
		results = append(results, foods[i].SearchResult())
	}
	return results, nil
}

// Search runs one matcher pass over the catalog.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	matcher := NewMatcher(opts.MinQueryLength, opts.MatchCategory)
	if !matcher.Searchable(query) {
		logger.Debug("Query below %d characters, returning no results", matcher.MinQueryLength)
		return []domain.SearchResult{}, nil
	}

	candidates, err := s.FetchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	results := matcher.Match(query, candidates)
	logger.Debug("Matched %d of %d candidates", len(results), len(candidates))

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// OpenSession starts an interactive session backed by this service.
func (s *SearchService) OpenSession(
	ctx context.Context, cfg domain.SessionConfig, opts ...driving.SessionOption,
) driving.SearchSession {
	var o driving.SessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	return NewSession(ctx, s.newID(), cfg, s, s.navigator, o.OnSelect)
}
