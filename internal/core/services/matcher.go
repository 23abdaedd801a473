package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// Matcher filters candidates by case-insensitive substring match.
// A candidate matches when the query occurs in its title, its description
// or, with MatchCategory, its category. Candidate order is preserved.
type Matcher struct {
	// MinQueryLength is the shortest query, in characters, that is searched.
	MinQueryLength int

	// MatchCategory includes the category in the searchable fields.
	MatchCategory bool
}

// NewMatcher creates a matcher. A non-positive minimum uses domain.MinQueryLength.
func NewMatcher(minQueryLength int, matchCategory bool) Matcher {
	if minQueryLength <= 0 {
		minQueryLength = domain.MinQueryLength
	}
	return Matcher{MinQueryLength: minQueryLength, MatchCategory: matchCategory}
}

// Searchable reports whether query is long enough to search.
func (m Matcher) Searchable(query string) bool {
	if query == "" {
		return false
	}
	return utf8.RuneCountInString(query) >= m.MinQueryLength
}

// Match returns the candidates matching query, in candidate order.
// Queries that are not searchable match nothing.
func (m Matcher) Match(query string, candidates []domain.SearchResult) []domain.SearchResult {
	if !m.Searchable(query) {
		return []domain.SearchResult{}
	}
	needle := strings.ToLower(query)

	matched := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if m.matches(needle, c) {
			matched = append(matched, c)
		}
	}
	return matched
}

func (m Matcher) matches(needle string, c domain.SearchResult) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) {
		return true
	}
	if c.Description != nil && strings.Contains(strings.ToLower(*c.Description), needle) {
		return true
	}
	if m.MatchCategory && c.Category != nil && strings.Contains(strings.ToLower(*c.Category), needle) {
		return true
	}
	return false
}
