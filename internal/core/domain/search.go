package domain

import (
	"fmt"
	"time"
)

// Search defaults.
const (
	// MinQueryLength is the shortest committed query that triggers a search.
	MinQueryLength = 3

	// DefaultDebounceInterval is the quiet period before a query is committed.
	DefaultDebounceInterval = 300 * time.Millisecond

	// OtherCategory is the group heading of results without a category.
	OtherCategory = "Other"

	// UngroupedHeading is the single heading used when grouping is off.
	UngroupedHeading = "Results"

	// DefaultPlaceholder is the prompt of the search input.
	DefaultPlaceholder = "Search for your favorite food or meal"

	// SearchingMessage is shown while a fetch is in flight.
	SearchingMessage = "Searching..."

	// NoResultsMessage is shown after a search matched nothing.
	NoResultsMessage = "No results found. Try a different search term."

	// FetchFailedMessage is shown when the candidate source failed.
	FetchFailedMessage = "Search failed. Please try again."

	typeMoreFormat = "Type at least %d characters to search."
)

// SearchResult is one matchable item. Optional fields are nil when absent,
// which is distinct from an empty string.
type SearchResult struct {
	// ID is unique within one result list.
	ID string `json:"id"`

	// Title is the primary display text.
	Title string `json:"title"`

	// Description is optional secondary text.
	Description *string `json:"description,omitempty"`

	// Category is the optional grouping key.
	Category *string `json:"category,omitempty"`

	// Target is the optional destination used on selection when no
	// handler is supplied.
	Target *string `json:"target,omitempty"`

	// ImageURL is an optional thumbnail, shown with ResultMediaImage.
	ImageURL string `json:"imageUrl,omitempty"`
}

// CategoryOrOther returns the group heading the result belongs to.
func (r SearchResult) CategoryOrOther() string {
	if r.Category == nil || *r.Category == "" {
		return OtherCategory
	}
	return *r.Category
}

// ResultGroup is one display bucket of results.
type ResultGroup struct {
	Heading string         `json:"heading"`
	Results []SearchResult `json:"results"`
}

// SearchStatus is the visible state of a search session.
type SearchStatus string

// Session statuses.
const (
	SearchStatusIdle       SearchStatus = "idle"
	SearchStatusSearching  SearchStatus = "searching"
	SearchStatusHasResults SearchStatus = "hasResults"
	SearchStatusNoResults  SearchStatus = "noResults"
	SearchStatusError      SearchStatus = "error"
)

// String returns the string representation.
func (s SearchStatus) String() string {
	return string(s)
}

// Presentation selects how the result list is displayed.
type Presentation string

// Available presentations.
const (
	PresentationInlineList  Presentation = "inline_list"
	PresentationModalDialog Presentation = "modal_dialog"
)

// IsValid returns true if the presentation is recognised.
func (p Presentation) IsValid() bool {
	return p == PresentationInlineList || p == PresentationModalDialog
}

// ResultMedia selects the leading visual of each result.
type ResultMedia string

// Available result media.
const (
	ResultMediaIcon  ResultMedia = "icon"
	ResultMediaImage ResultMedia = "image"
)

// IsValid returns true if the media kind is recognised.
func (m ResultMedia) IsValid() bool {
	return m == ResultMediaIcon || m == ResultMediaImage
}

// SearchOptions configures a one-shot search.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// MatchCategory includes the category in the searchable fields.
	MatchCategory bool

	// MinQueryLength is the shortest searchable query. Zero means
	// MinQueryLength of the package.
	MinQueryLength int
}

// SessionConfig configures an interactive search session.
type SessionConfig struct {
	// GroupByCategory partitions results by category.
	GroupByCategory bool

	// Presentation is the display variant.
	Presentation Presentation

	// ResultMedia is the leading visual of each result.
	ResultMedia ResultMedia

	// MinQueryLength is the shortest query that triggers a search.
	MinQueryLength int

	// Debounce is the quiet period before a query is committed.
	Debounce time.Duration

	// FetchTimeout bounds each candidate fetch. Zero disables it.
	FetchTimeout time.Duration

	// MatchCategory includes the category in the searchable fields.
	MatchCategory bool

	// Placeholder is the prompt shown in an empty input.
	Placeholder string
}

// DefaultSessionConfig returns the configuration of the food search box.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		GroupByCategory: true,
		Presentation:    PresentationInlineList,
		ResultMedia:     ResultMediaIcon,
		MinQueryLength:  MinQueryLength,
		Debounce:        DefaultDebounceInterval,
		FetchTimeout:    0,
		MatchCategory:   true,
		Placeholder:     DefaultPlaceholder,
	}
}

// Normalised fills zero fields with defaults.
func (c SessionConfig) Normalised() SessionConfig {
	def := DefaultSessionConfig()
	if !c.Presentation.IsValid() {
		c.Presentation = def.Presentation
	}
	if !c.ResultMedia.IsValid() {
		c.ResultMedia = def.ResultMedia
	}
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = def.MinQueryLength
	}
	if c.Debounce < 0 {
		c.Debounce = 0
	}
	if c.FetchTimeout < 0 {
		c.FetchTimeout = 0
	}
	if c.Placeholder == "" {
		c.Placeholder = def.Placeholder
	}
	return c
}

// SessionState is a snapshot of a search session. Slices are owned by the
// snapshot and replaced wholesale on every search.
type SessionState struct {
	// SessionID identifies the session in logs.
	SessionID string

	// RawQuery is the latest input text.
	RawQuery string

	// DebouncedQuery is the last committed query.
	DebouncedQuery string

	// Groups are the displayed result buckets in display order.
	Groups []ResultGroup

	// Results is the flattened list of Groups.
	Results []SearchResult

	// SelectionIndex is in [-1, len(Results)-1]; -1 means no selection.
	SelectionIndex int

	// Status is the visible state.
	Status SearchStatus

	// HasSearched is true once a query reached the candidate source.
	HasSearched bool

	// ErrorMessage is set when Status is SearchStatusError.
	ErrorMessage string

	// NeedsMoreInput is true when a non-empty committed query is shorter
	// than MinQueryLength.
	NeedsMoreInput bool

	// MinQueryLength is the threshold the session was opened with.
	MinQueryLength int
}

// Selected returns the highlighted result, if any.
func (s SessionState) Selected() (SearchResult, bool) {
	if s.SelectionIndex < 0 || s.SelectionIndex >= len(s.Results) {
		return SearchResult{}, false
	}
	return s.Results[s.SelectionIndex], true
}

// EmptyMessage returns the message shown instead of a result list,
// or "" when results are shown or nothing has been searched yet.
func (s SessionState) EmptyMessage() string {
	switch s.Status {
	case SearchStatusSearching:
		return SearchingMessage
	case SearchStatusError:
		return s.ErrorMessage
	case SearchStatusNoResults:
		if s.HasSearched {
			return NoResultsMessage
		}
	case SearchStatusIdle:
		if s.NeedsMoreInput {
			return fmt.Sprintf(typeMoreFormat, s.MinQueryLength)
		}
	}
	return ""
}

// GroupResults partitions results for display. With byCategory, groups are
// keyed by category (missing ones under "Other") in first-appearance order;
// otherwise all results form a single "Results" group.
// No groups are returned for an empty list.
func GroupResults(results []SearchResult, byCategory bool) []ResultGroup {
	if len(results) == 0 {
		return nil
	}
	if !byCategory {
		return []ResultGroup{{
			Heading: UngroupedHeading,
			Results: append([]SearchResult(nil), results...),
		}}
	}

	var groups []ResultGroup
	index := make(map[string]int)
	for _, r := range results {
		heading := r.CategoryOrOther()
		i, ok := index[heading]
		if !ok {
			i = len(groups)
			index[heading] = i
			groups = append(groups, ResultGroup{Heading: heading})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}

// Flatten concatenates groups in display order. Cursor positions index
// into this list.
func Flatten(groups []ResultGroup) []SearchResult {
	n := 0
	for _, g := range groups {
		n += len(g.Results)
	}
	flat := make([]SearchResult, 0, n)
	for _, g := range groups {
		flat = append(flat, g.Results...)
	}
	return flat
}
