package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/index/trie"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/core/services"
)

// recordingNavigator remembers every target it was asked to open.
type recordingNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (n *recordingNavigator) NavigateTo(_ context.Context, target string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
	return nil
}

func (n *recordingNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

type testEnv struct {
	store     *memory.FoodStore
	config    *memory.ConfigStore
	navigator *recordingNavigator
}

// newTestServices builds services over the seeded memory catalog.
func newTestServices() (*testEnv, *Services) {
	env := &testEnv{
		store:     memory.NewSeededFoodStore(),
		config:    memory.NewConfigStore(),
		navigator: &recordingNavigator{},
	}
	_ = env.config.Set("search.debounce_ms", 1)

	food := services.NewFoodService(env.store, trie.New())
	_ = food.RebuildIndex(context.Background())

	return env, &Services{
		Search:    services.NewSearchService(env.store, env.navigator),
		Food:      food,
		Settings:  services.NewSettingsService(env.config),
		Navigator: env.navigator,
	}
}

// setupTestServices installs test services and returns a cleanup that
// uninstalls them.
func setupTestServices() (*testEnv, func()) {
	env, s := newTestServices()
	SetServices(s)
	return env, func() { SetServices(nil) }
}

func resetFlags() {
	searchLimit, searchJSON, searchGroup, searchOpen = 10, false, false, false
	foodServing, foodJSON, foodLimit = 0, false, 0
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
