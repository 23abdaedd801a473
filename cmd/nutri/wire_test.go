package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/services"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envConfigDir, envCatalog, envCatalogPath, envWebAddr, envWebBaseURL} {
		t.Setenv(key, "")
	}
}

func TestBootstrap_Memory(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCatalog, "memory")

	s, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	foods, err := s.Food.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, foods, len(memory.SeedFoods()))
	assert.Nil(t, s.Watch)
	assert.Nil(t, s.Close)

	slugs, err := s.Food.CompleteSlug(context.Background(), "s", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"salmon", "spinach"}, slugs)
}

func TestBootstrap_Bundled(t *testing.T) {
	clearEnv(t)

	s, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	foods, err := s.Food.List(context.Background(), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, foods)
}

func TestBootstrap_SQLite(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(envCatalog, "sqlite")

	s, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)
	require.NotNil(t, s.Close)
	defer func() { assert.NoError(t, s.Close()) }()

	n, err := s.Food.Import(context.Background(), memory.SeedFoods()[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(dir, "data", "foods.db"))

	food, err := s.Food.Get(context.Background(), "pizza")
	require.NoError(t, err)
	assert.NotEmpty(t, food.ID)
}

func TestBootstrap_JSONRequiresPath(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCatalog, "json")

	_, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBootstrap_JSONWatches(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "foods.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Kiwi", "caloriesPer100g": 61}]`), 0o600))
	t.Setenv(envCatalog, "json")
	t.Setenv(envCatalogPath, path)

	s, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)

	assert.NotNil(t, s.Watch)
	food, err := s.Food.Get(context.Background(), "kiwi")
	require.NoError(t, err)
	assert.Equal(t, "Kiwi", food.Name)
}

func TestBootstrap_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCatalog, "postgres")

	_, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBootstrap_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(envCatalog)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envCatalog+"=memory\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(envCatalog) })

	s, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogMemory, settings.Catalog.Backend)
}

func TestResolveConfigDir(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "/from/flag", mustResolve(t, "/from/flag"))

	t.Setenv(envConfigDir, "/from/env")
	assert.Equal(t, "/from/env", mustResolve(t, ""))
}

func mustResolve(t *testing.T, flag string) string {
	t.Helper()
	dir, err := resolveConfigDir(flag)
	require.NoError(t, err)
	return dir
}

func TestEnvSettings_OverridesWithoutSaving(t *testing.T) {
	clearEnv(t)
	store := memory.NewConfigStore()
	settings := &envSettings{SettingsService: services.NewSettingsService(store)}
	t.Setenv(envWebAddr, ":9999")
	t.Setenv(envWebBaseURL, "http://example.test")

	got, err := settings.Get()
	require.NoError(t, err)

	assert.Equal(t, ":9999", got.Web.Addr)
	assert.Equal(t, "http://example.test", got.Web.BaseURL)
	_, stored := store.Get("web.addr")
	assert.False(t, stored)
}
