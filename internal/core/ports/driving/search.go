package driving

import (
	"context"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs a single matcher pass for query without debouncing.
	// Queries below the minimum length return no results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// OpenSession starts an interactive search session. The session owns
	// its debounce timer and in-flight fetches until Close is called.
	OpenSession(ctx context.Context, cfg domain.SessionConfig, opts ...SessionOption) SearchSession
}

// SelectHandler receives the result chosen with Enter. When set, the
// session does not navigate.
type SelectHandler func(result domain.SearchResult)

// SessionOption customises a session.
type SessionOption func(*SessionOptions)

// SessionOptions holds the optional collaborators of a session.
type SessionOptions struct {
	// OnSelect replaces navigation on Enter.
	OnSelect SelectHandler
}

// WithSelectHandler installs a custom select handler.
func WithSelectHandler(h SelectHandler) SessionOption {
	return func(o *SessionOptions) {
		o.OnSelect = h
	}
}

// SearchSession is one mounted search box.
type SearchSession interface {
	// ID identifies the session in logs.
	ID() string

	// Input records a keystroke. The raw query updates at once; the
	// committed query follows after the debounce interval.
	Input(text string)

	// MoveDown moves the cursor one result down, stopping at the last.
	MoveDown()

	// MoveUp moves the cursor one result up, stopping at -1.
	MoveUp()

	// Hover sets the cursor to a flattened result position.
	Hover(index int)

	// Escape clears the input and the cursor without selecting.
	Escape()

	// Enter selects the highlighted result. It calls the select handler
	// if one was given, otherwise navigates to the result target.
	Enter(ctx context.Context) (domain.SearchResult, error)

	// Reset discards all state, as after a completed selection.
	Reset()

	// Snapshot returns the current state.
	Snapshot() domain.SessionState

	// Changes signals state changes. Notifications coalesce; read
	// Snapshot after each receive. Closed by Close; a signal pending at
	// that point is dropped.
	Changes() <-chan struct{}

	// Close cancels pending timers and fetches.
	Close()
}
