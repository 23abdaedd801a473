package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SearchSession = (*Session)(nil)

// Session is one interactive search box. It owns its debounce timer, its
// in-flight fetches and its state; nothing is shared between sessions.
//
// Every committed query is tagged with a request id. Responses carrying an
// older id than the latest issued are dropped, so an out-of-order response
// can never overwrite the results of a newer query.
type Session struct {
	id        string
	cfg       domain.SessionConfig
	matcher   Matcher
	source    driven.CandidateSource
	navigator driven.Navigator
	onSelect  driving.SelectHandler
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	changes chan struct{}

	mu         sync.Mutex
	state      domain.SessionState
	requestGen uint64
	closed     bool
}

// NewSession opens a session over source. navigator and onSelect may be nil.
func NewSession(
	ctx context.Context,
	id string,
	cfg domain.SessionConfig,
	source driven.CandidateSource,
	navigator driven.Navigator,
	onSelect driving.SelectHandler,
) *Session {
	cfg = cfg.Normalised()
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		id:        id,
		cfg:       cfg,
		matcher:   NewMatcher(cfg.MinQueryLength, cfg.MatchCategory),
		source:    source,
		navigator: navigator,
		onSelect:  onSelect,
		ctx:       ctx,
		cancel:    cancel,
		changes:   make(chan struct{}, 1),
	}
	s.state = s.initialState()
	s.debouncer = NewDebouncer(cfg.Debounce, s.commit)

	logger.Debug("session %s opened (group=%t, min=%d, debounce=%s)",
		id, cfg.GroupByCategory, cfg.MinQueryLength, cfg.Debounce)
	return s
}

func (s *Session) initialState() domain.SessionState {
	return domain.SessionState{
		SessionID:      s.id,
		SelectionIndex: -1,
		Status:         domain.SearchStatusIdle,
		MinQueryLength: s.cfg.MinQueryLength,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Config returns the normalised session configuration.
func (s *Session) Config() domain.SessionConfig {
	return s.cfg
}

// Input records a keystroke.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.RawQuery = text
	s.notifyLocked()
	s.mu.Unlock()

	s.debouncer.Push(text)
}

// commit runs when the debouncer settles on a query.
func (s *Session) commit(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.requestGen++
	gen := s.requestGen
	s.state.DebouncedQuery = query

	if !s.matcher.Searchable(query) {
		s.replaceResultsLocked(nil)
		s.state.Status = domain.SearchStatusIdle
		s.state.HasSearched = false
		s.state.ErrorMessage = ""
		s.state.NeedsMoreInput = query != ""
		s.notifyLocked()
		s.mu.Unlock()
		logger.Debug("session %s: query %q below threshold", s.id, query)
		return
	}

	s.state.Status = domain.SearchStatusSearching
	s.state.HasSearched = true
	s.state.ErrorMessage = ""
	s.state.NeedsMoreInput = false
	s.notifyLocked()
	s.mu.Unlock()

	logger.Debug("session %s: request %d for %q", s.id, gen, query)
	go s.fetch(gen, query)
}

type fetchResult struct {
	candidates []domain.SearchResult
	err        error
}

func (s *Session) fetch(gen uint64, query string) {
	ctx := s.ctx
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	// The source may ignore ctx, so wait on it separately.
	done := make(chan fetchResult, 1)
	go func() {
		candidates, err := s.source.FetchCandidates(ctx, query)
		done <- fetchResult{candidates: candidates, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	s.apply(gen, query, res)
}

func (s *Session) apply(gen uint64, query string, res fetchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if gen != s.requestGen {
		logger.Debug("session %s: dropping stale response %d (latest %d)", s.id, gen, s.requestGen)
		return
	}

	if res.err != nil {
		logger.Warn("session %s: fetch for %q failed: %v", s.id, query, res.err)
		s.replaceResultsLocked(nil)
		s.state.Status = domain.SearchStatusError
		s.state.ErrorMessage = domain.FetchFailedMessage
		s.notifyLocked()
		return
	}

	matched := s.matcher.Match(query, res.candidates)
	s.replaceResultsLocked(domain.GroupResults(matched, s.cfg.GroupByCategory))
	if len(matched) > 0 {
		s.state.Status = domain.SearchStatusHasResults
	} else {
		s.state.Status = domain.SearchStatusNoResults
	}
	logger.Debug("session %s: request %d matched %d of %d", s.id, gen, len(matched), len(res.candidates))
	s.notifyLocked()
}

// replaceResultsLocked swaps in a new result list and clears the cursor.
func (s *Session) replaceResultsLocked(groups []domain.ResultGroup) {
	s.state.Groups = groups
	s.state.Results = domain.Flatten(groups)
	s.state.SelectionIndex = -1
}

// MoveDown moves the cursor down, stopping at the last result.
func (s *Session) MoveDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Results)
	if s.closed || n == 0 {
		return
	}
	s.state.SelectionIndex = min(s.state.SelectionIndex+1, n-1)
	s.notifyLocked()
}

// MoveUp moves the cursor up, stopping at -1.
func (s *Session) MoveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.SelectionIndex = max(s.state.SelectionIndex-1, -1)
	s.notifyLocked()
}

// Hover points the cursor at a flattened position. Out-of-range
// positions are ignored.
func (s *Session) Hover(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || index < -1 || index >= len(s.state.Results) {
		return
	}
	s.state.SelectionIndex = index
	s.notifyLocked()
}

// Escape clears the input and cursor. Results clear once the empty query commits.
func (s *Session) Escape() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.RawQuery = ""
	s.state.SelectionIndex = -1
	s.notifyLocked()
	s.mu.Unlock()

	s.debouncer.Push("")
}

// Enter selects the highlighted result. Exactly one of the select handler
// and the navigator is used.
func (s *Session) Enter(ctx context.Context) (domain.SearchResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.SearchResult{}, domain.ErrSessionClosed
	}
	selected, ok := s.state.Selected()
	s.mu.Unlock()

	if !ok {
		return domain.SearchResult{}, domain.ErrNoSelection
	}
	logger.Debug("session %s: selected %q", s.id, selected.ID)

	if s.onSelect != nil {
		s.onSelect(selected)
		return selected, nil
	}
	if selected.Target == nil || s.navigator == nil {
		return selected, fmt.Errorf("select %q: %w", selected.ID, domain.ErrNoTarget)
	}
	if err := s.navigator.NavigateTo(ctx, *selected.Target); err != nil {
		return selected, fmt.Errorf("navigate to %s: %w", *selected.Target, err)
	}
	return selected, nil
}

// Reset discards all state and any pending or in-flight query.
func (s *Session) Reset() {
	s.debouncer.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.requestGen++
	s.state = s.initialState()
	s.notifyLocked()
}

// Snapshot returns the current state. Result slices are replaced, never
// mutated, so the snapshot stays valid.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Changes signals state changes. Close drops any pending signal and
// closes the channel.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Close cancels pending timers and fetches. Safe to call more than once.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	select {
	case <-s.changes:
	default:
	}
	close(s.changes)
	logger.Debug("session %s closed", s.id)
}

func (s *Session) notifyLocked() {
	if s.closed {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
