package domain

import "time"

const unknownDescription = "Unknown"

// CatalogBackend identifies where foods are loaded from.
type CatalogBackend string

// Available catalog backends.
const (
	// CatalogBundled is the JSON catalog compiled into the binary.
	CatalogBundled CatalogBackend = "bundled"

	// CatalogMemory is the small hard-coded demo list.
	CatalogMemory CatalogBackend = "memory"

	// CatalogJSON is a JSON file on disk, reloaded when it changes.
	CatalogJSON CatalogBackend = "json"

	// CatalogSQLite is the local database populated by `nutri food import`.
	CatalogSQLite CatalogBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b CatalogBackend) IsValid() bool {
	switch b {
	case CatalogBundled, CatalogMemory, CatalogJSON, CatalogSQLite:
		return true
	default:
		return false
	}
}

// RequiresPath returns true if the backend reads a user-supplied file.
func (b CatalogBackend) RequiresPath() bool {
	return b == CatalogJSON
}

// String returns the string representation.
func (b CatalogBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CatalogBackend) Description() string {
	switch b {
	case CatalogBundled:
		return "Bundled (built-in food catalog)"
	case CatalogMemory:
		return "Memory (small demo list)"
	case CatalogJSON:
		return "JSON file (watched for changes)"
	case CatalogSQLite:
		return "SQLite (imported foods)"
	default:
		return unknownDescription
	}
}

// AllCatalogBackends returns all available catalog backends.
func AllCatalogBackends() []CatalogBackend {
	return []CatalogBackend{CatalogBundled, CatalogMemory, CatalogJSON, CatalogSQLite}
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// GroupByCategory partitions results by category.
	GroupByCategory bool

	// MatchCategory includes the category in the searchable fields.
	MatchCategory bool

	// Presentation is the display variant of the search box.
	Presentation Presentation

	// ResultMedia is the leading visual of each result.
	ResultMedia ResultMedia

	// MinQueryLength is the shortest query that triggers a search.
	MinQueryLength int

	// DebounceMS is the quiet period before a query is committed.
	DebounceMS int

	// FetchTimeoutMS bounds each candidate fetch. Zero disables it.
	FetchTimeoutMS int

	// Limit caps one-shot search results. Zero means no limit.
	Limit int
}

// SessionConfig converts the settings into a session configuration.
func (s SearchSettings) SessionConfig() SessionConfig {
	return SessionConfig{
		GroupByCategory: s.GroupByCategory,
		Presentation:    s.Presentation,
		ResultMedia:     s.ResultMedia,
		MinQueryLength:  s.MinQueryLength,
		Debounce:        time.Duration(s.DebounceMS) * time.Millisecond,
		FetchTimeout:    time.Duration(s.FetchTimeoutMS) * time.Millisecond,
		MatchCategory:   s.MatchCategory,
	}.Normalised()
}

// CatalogSettings selects the food catalog.
type CatalogSettings struct {
	// Backend is where foods are loaded from.
	Backend CatalogBackend

	// Path is the JSON catalog file for CatalogJSON.
	Path string
}

// IsConfigured returns true if the catalog can be opened.
func (c CatalogSettings) IsConfigured() bool {
	if !c.Backend.IsValid() {
		return false
	}
	if c.Backend.RequiresPath() && c.Path == "" {
		return false
	}
	return true
}

// WebSettings configures `nutri serve`.
type WebSettings struct {
	// Addr is the listen address.
	Addr string

	// BaseURL is used to turn routes into browser URLs.
	BaseURL string

	// RateLimit is the sustained search API rate in requests per second.
	RateLimit float64

	// Burst is the search API burst size.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Catalog selects the food catalog.
	Catalog CatalogSettings

	// Web holds web server settings.
	Web WebSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			GroupByCategory: true,
			MatchCategory:   true,
			Presentation:    PresentationInlineList,
			ResultMedia:     ResultMediaIcon,
			MinQueryLength:  MinQueryLength,
			DebounceMS:      int(DefaultDebounceInterval / time.Millisecond),
			FetchTimeoutMS:  0,
			Limit:           10,
		},
		Catalog: CatalogSettings{
			Backend: CatalogBundled,
		},
		Web: WebSettings{
			Addr:      "127.0.0.1:8080",
			BaseURL:   "http://127.0.0.1:8080",
			RateLimit: 10,
			Burst:     20,
		},
	}
}
