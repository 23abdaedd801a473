// Package trie provides a driven.SlugIndex backed by a patricia trie.
package trie

import (
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SlugIndex = (*Index)(nil)

// Index completes slug prefixes.
type Index struct {
	mu   sync.RWMutex
	trie *patricia.Trie
}

// New returns an index holding slugs.
func New(slugs ...string) *Index {
	idx := &Index{}
	idx.Rebuild(slugs)
	return idx
}

// Rebuild replaces the indexed slugs. Slugs are indexed lower-cased.
func (i *Index) Rebuild(slugs []string) {
	t := patricia.NewTrie()
	for _, slug := range slugs {
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug == "" {
			continue
		}
		t.Insert(patricia.Prefix(slug), struct{}{})
	}

	i.mu.Lock()
	i.trie = t
	i.mu.Unlock()
}

// Complete returns up to limit slugs starting with prefix in lexical order.
// An empty prefix matches every slug.
func (i *Index) Complete(prefix string, limit int) []string {
	i.mu.RLock()
	t := i.trie
	i.mu.RUnlock()
	if t == nil {
		return nil
	}

	var out []string
	_ = t.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})

	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
