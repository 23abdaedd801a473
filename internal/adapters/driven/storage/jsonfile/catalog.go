package jsonfile

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

//go:embed foods.json
var bundled []byte

// Ensure Catalog implements the interface.
var _ driven.FoodStore = (*Catalog)(nil)

// Catalog is a read-only food list loaded from JSON.
type Catalog struct {
	mu     sync.RWMutex
	path   string
	foods  []domain.Food
	bySlug map[string]int
}

// NewBundled returns the catalog compiled into the binary.
func NewBundled() (*Catalog, error) {
	foods, err := Parse(bundled)
	if err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	c := &Catalog{}
	c.replace(foods)
	return c, nil
}

// Open loads the catalog at path.
func Open(path string) (*Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}
	c := &Catalog{path: abs}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the backing file, or "" for the bundled catalog.
func (c *Catalog) Path() string {
	return c.path
}

// Reload re-reads the backing file. On failure the current foods are kept.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	foods, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}
	c.mu.Lock()
	c.replace(foods)
	c.mu.Unlock()
	return nil
}

// replace swaps the food list (caller must hold lock).
func (c *Catalog) replace(foods []domain.Food) {
	c.foods = foods
	c.bySlug = make(map[string]int, len(foods))
	for i := range foods {
		c.bySlug[foods[i].Slug] = i
	}
}

// Watch reloads the catalog whenever its file changes and calls onReload
// after each successful reload. It blocks until ctx is cancelled.
// The parent directory is watched so editors that replace the file by
// rename are handled.
func (c *Catalog) Watch(ctx context.Context, onReload func()) error {
	if c.path == "" {
		return fmt.Errorf("bundled catalog cannot be watched: %w", domain.ErrInvalidInput)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(c.path), err)
	}
	logger.Debug("watching catalog %s", c.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !c.isCatalogEvent(event) {
				continue
			}
			if err := c.Reload(); err != nil {
				logger.Warn("catalog reload failed, keeping previous foods: %v", err)
				continue
			}
			logger.Debug("catalog reloaded after %s", event.Op)
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher: %v", err)
		}
	}
}

func (c *Catalog) isCatalogEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != c.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// List returns all foods in file order.
func (c *Catalog) List(_ context.Context) ([]domain.Food, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	foods := make([]domain.Food, len(c.foods))
	copy(foods, c.foods)
	return foods, nil
}

// Get retrieves a food by slug.
func (c *Catalog) Get(_ context.Context, slug string) (*domain.Food, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	food := c.foods[i]
	return &food, nil
}

// Save is not supported.
func (c *Catalog) Save(_ context.Context, _ *domain.Food) error {
	return fmt.Errorf("json catalog is read-only: %w", domain.ErrInvalidInput)
}

// Delete is not supported.
func (c *Catalog) Delete(_ context.Context, _ string) error {
	return fmt.Errorf("json catalog is read-only: %w", domain.ErrInvalidInput)
}

// Count returns the number of foods.
func (c *Catalog) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.foods), nil
}
