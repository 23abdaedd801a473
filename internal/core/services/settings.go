package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyGroupByCategory = "search.group_by_category"
	keyMatchCategory   = "search.match_category"
	keyPresentation    = "search.presentation"
	keyResultMedia     = "search.result_media"
	keyMinQueryLength  = "search.min_query_length"
	keyDebounceMS      = "search.debounce_ms"
	keyFetchTimeoutMS  = "search.fetch_timeout_ms"
	keySearchLimit     = "search.limit"
	keyCatalogBackend  = "catalog.backend"
	keyCatalogPath     = "catalog.path"
	keyWebAddr         = "web.addr"
	keyWebBaseURL      = "web.base_url"
	keyWebRateLimit    = "web.rate_limit"
	keyWebBurst        = "web.burst"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
)

var settingKinds = map[string]keyKind{
	keyGroupByCategory: kindBool,
	keyMatchCategory:   kindBool,
	keyPresentation:    kindString,
	keyResultMedia:     kindString,
	keyMinQueryLength:  kindInt,
	keyDebounceMS:      kindInt,
	keyFetchTimeoutMS:  kindInt,
	keySearchLimit:     kindInt,
	keyCatalogBackend:  kindString,
	keyCatalogPath:     kindString,
	keyWebAddr:         kindString,
	keyWebBaseURL:      kindString,
	keyWebRateLimit:    kindFloat,
	keyWebBurst:        kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			GroupByCategory: s.getBool(keyGroupByCategory, defaults.Search.GroupByCategory),
			MatchCategory:   s.getBool(keyMatchCategory, defaults.Search.MatchCategory),
			Presentation:    s.getPresentation(defaults.Search.Presentation),
			ResultMedia:     s.getResultMedia(defaults.Search.ResultMedia),
			MinQueryLength:  s.getInt(keyMinQueryLength, defaults.Search.MinQueryLength),
			DebounceMS:      s.getInt(keyDebounceMS, defaults.Search.DebounceMS),
			FetchTimeoutMS:  s.getInt(keyFetchTimeoutMS, defaults.Search.FetchTimeoutMS),
			Limit:           s.getInt(keySearchLimit, defaults.Search.Limit),
		},
		Catalog: domain.CatalogSettings{
			Backend: s.getBackend(defaults.Catalog.Backend),
			Path:    s.configStore.GetString(keyCatalogPath),
		},
		Web: domain.WebSettings{
			Addr:      s.getString(keyWebAddr, defaults.Web.Addr),
			BaseURL:   s.getString(keyWebBaseURL, defaults.Web.BaseURL),
			RateLimit: s.getFloat(keyWebRateLimit, defaults.Web.RateLimit),
			Burst:     s.getInt(keyWebBurst, defaults.Web.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyGroupByCategory, settings.Search.GroupByCategory},
		{keyMatchCategory, settings.Search.MatchCategory},
		{keyPresentation, string(settings.Search.Presentation)},
		{keyResultMedia, string(settings.Search.ResultMedia)},
		{keyMinQueryLength, settings.Search.MinQueryLength},
		{keyDebounceMS, settings.Search.DebounceMS},
		{keyFetchTimeoutMS, settings.Search.FetchTimeoutMS},
		{keySearchLimit, settings.Search.Limit},
		{keyCatalogBackend, settings.Catalog.Backend.String()},
		{keyCatalogPath, settings.Catalog.Path},
		{keyWebAddr, settings.Web.Addr},
		{keyWebBaseURL, settings.Web.BaseURL},
		{keyWebRateLimit, settings.Web.RateLimit},
		{keyWebBurst, settings.Web.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the type of key, validates it and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s expects a non-negative integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s expects a non-negative number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	default:
		if err := validateEnum(key, value); err != nil {
			return err
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func validateEnum(key, value string) error {
	switch key {
	case keyPresentation:
		if !domain.Presentation(value).IsValid() {
			return fmt.Errorf("invalid presentation %q: %w", value, domain.ErrInvalidInput)
		}
	case keyResultMedia:
		if !domain.ResultMedia(value).IsValid() {
			return fmt.Errorf("invalid result media %q: %w", value, domain.ErrInvalidInput)
		}
	case keyCatalogBackend:
		if !domain.CatalogBackend(value).IsValid() {
			return fmt.Errorf("invalid catalog backend %q: %w", value, domain.ErrInvalidInput)
		}
	}
	return nil
}

// Keys returns the recognised configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the current settings can be used.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Catalog.IsConfigured() {
		return fmt.Errorf("catalog %q is not configured (set %s): %w",
			settings.Catalog.Backend.Description(), keyCatalogPath, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(settings.Web.Addr) == "" {
		return fmt.Errorf("%s must not be empty: %w", keyWebAddr, domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPresentation(defaultVal domain.Presentation) domain.Presentation {
	p := domain.Presentation(s.configStore.GetString(keyPresentation))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getResultMedia(defaultVal domain.ResultMedia) domain.ResultMedia {
	m := domain.ResultMedia(s.configStore.GetString(keyResultMedia))
	if !m.IsValid() {
		return defaultVal
	}
	return m
}

func (s *SettingsService) getBackend(defaultVal domain.CatalogBackend) domain.CatalogBackend {
	b := domain.CatalogBackend(s.configStore.GetString(keyCatalogBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}
