package driven

import (
	"context"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// CandidateSource produces the candidates for a committed query.
// It may pre-filter; the session matcher still filters its response.
// Failures are reported as errors and never retried by the caller.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// CandidateSourceFunc adapts a function to CandidateSource.
type CandidateSourceFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)

// FetchCandidates calls f.
func (f CandidateSourceFunc) FetchCandidates(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return f(ctx, query)
}

// SlugIndex offers prefix completion over food slugs.
type SlugIndex interface {
	// Rebuild replaces the indexed slugs.
	Rebuild(slugs []string)

	// Complete returns up to limit slugs starting with prefix, in
	// lexical order. A limit of zero means no limit.
	Complete(prefix string, limit int) []string
}
