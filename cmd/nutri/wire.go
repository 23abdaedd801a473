package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/index/trie"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/navigator/browser"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/core/services"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

// Environment overrides. They apply to the running process only and are
// never written back to config.toml.
const (
	envConfigDir   = "NUTRI_CONFIG_DIR"
	envCatalog     = "NUTRI_CATALOG"
	envCatalogPath = "NUTRI_CATALOG_PATH"
	envWebAddr     = "NUTRI_WEB_ADDR"
	envWebBaseURL  = "NUTRI_WEB_BASE_URL"
)

// bootstrap builds the services for one process.
func bootstrap(opts cli.BootstrapOptions) (*cli.Services, error) {
	dir, err := resolveConfigDir(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	loadEnv(dir)

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := &envSettings{SettingsService: services.NewSettingsService(configStore)}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	cat, err := openCatalog(settings.Catalog, dir)
	if err != nil {
		return nil, err
	}

	nav, err := browser.New(settings.Web.BaseURL)
	if err != nil {
		return nil, err
	}

	index := trie.New()
	foodService := services.NewFoodService(cat.store, index)
	foodService.SetIDGenerator(uuid.NewString)
	if err := foodService.RebuildIndex(context.Background()); err != nil {
		logger.Warn("building slug index: %v", err)
	}

	searchService := services.NewSearchService(cat.store, nav)
	searchService.SetIDGenerator(uuid.NewString)

	s := &cli.Services{
		Search:    searchService,
		Food:      foodService,
		Settings:  settingsService,
		Navigator: nav,
		Close:     cat.close,
	}
	if cat.watch != nil {
		s.Watch = func(ctx context.Context) error {
			return cat.watch(ctx, func() {
				if err := foodService.RebuildIndex(ctx); err != nil {
					logger.Warn("rebuilding slug index: %v", err)
				}
			})
		}
	}
	logger.Debug("catalog %s ready, config in %s", settings.Catalog.Backend, dir)
	return s, nil
}

func resolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}
	return file.DefaultDir()
}

// loadEnv reads .env from the working directory, then from the config
// directory. Variables already set win.
func loadEnv(dir string) {
	for _, path := range []string{".env", filepath.Join(dir, ".env")} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("loading %s: %v", path, err)
		}
	}
}

// catalog is an opened food store with its lifecycle hooks.
type catalog struct {
	store driven.FoodStore
	watch func(ctx context.Context, onReload func()) error
	close func() error
}

func openCatalog(cfg domain.CatalogSettings, configDir string) (*catalog, error) {
	switch cfg.Backend {
	case domain.CatalogMemory:
		return &catalog{store: memory.NewSeededFoodStore()}, nil

	case domain.CatalogJSON:
		if cfg.Path == "" {
			return nil, fmt.Errorf("catalog.path is required for the json catalog: %w", domain.ErrInvalidInput)
		}
		c, err := jsonfile.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &catalog{store: c, watch: c.Watch}, nil

	case domain.CatalogSQLite:
		dataDir := cfg.Path
		if dataDir == "" {
			dataDir = filepath.Join(configDir, "data")
		}
		s, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite catalog: %w", err)
		}
		return &catalog{store: s.FoodStore(), close: s.Close}, nil

	case domain.CatalogBundled, "":
		c, err := jsonfile.NewBundled()
		if err != nil {
			return nil, err
		}
		return &catalog{store: c}, nil

	default:
		return nil, fmt.Errorf("unknown catalog backend %q: %w", cfg.Backend, domain.ErrInvalidInput)
	}
}

// envSettings overlays environment overrides on the stored settings.
type envSettings struct {
	driving.SettingsService
}

// Get returns the stored settings with environment overrides applied.
func (e *envSettings) Get() (*domain.AppSettings, error) {
	settings, err := e.SettingsService.Get()
	if err != nil {
		return nil, err
	}
	if v := os.Getenv(envCatalog); v != "" {
		settings.Catalog.Backend = domain.CatalogBackend(v)
	}
	if v := os.Getenv(envCatalogPath); v != "" {
		settings.Catalog.Path = v
	}
	if v := os.Getenv(envWebAddr); v != "" {
		settings.Web.Addr = v
	}
	if v := os.Getenv(envWebBaseURL); v != "" {
		settings.Web.BaseURL = v
	}
	return settings, nil
}
