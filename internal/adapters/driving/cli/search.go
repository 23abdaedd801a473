package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchGroup bool
	searchOpen  bool
)

// searchOpenTimeout bounds how long --open waits for the debounced search.
var searchOpenTimeout = 10 * time.Second

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the food catalog",
	Long: `Matches the query against food names, descriptions and categories.
Queries shorter than three characters return nothing.

With --open the query runs through a live search session and the first
result is opened in the browser.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchGroup, "group", "g", false, "group results by category")
	searchCmd.Flags().BoolVar(&searchOpen, "open", false, "open the first result in the browser")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errSearchNotConfigured
	}

	if searchOpen {
		return runSearchOpen(cmd, query)
	}

	opts := domain.SearchOptions{
		Limit:          searchLimit,
		MatchCategory:  true,
		MinQueryLength: domain.MinQueryLength,
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts.MatchCategory = settings.Search.MatchCategory
			opts.MinQueryLength = settings.Search.SessionConfig().Normalised().MinQueryLength
		}
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, query, opts.MinQueryLength, results)
}

// runSearchOpen drives a session the way the search box does: type,
// wait for the debounced results, highlight the first, press enter.
func runSearchOpen(cmd *cobra.Command, query string) error {
	cfg := domain.DefaultSessionConfig()
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cfg = settings.Search.SessionConfig()
		}
	}

	cfg = cfg.Normalised()
	if len([]rune(query)) < cfg.MinQueryLength {
		cmd.Printf("Type at least %d characters to search.\n", cfg.MinQueryLength)
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), searchOpenTimeout)
	defer cancel()

	session := searchService.OpenSession(ctx, cfg)
	defer session.Close()

	session.Input(query)
	state, err := awaitSettled(ctx, session.Changes(), session.Snapshot)
	if err != nil {
		return err
	}

	switch state.Status {
	case domain.SearchStatusError:
		return fmt.Errorf("search failed: %s", state.ErrorMessage)
	case domain.SearchStatusHasResults:
	default:
		msg := state.EmptyMessage()
		if msg == "" {
			msg = domain.NoResultsMessage
		}
		cmd.Println(msg)
		return nil
	}

	session.MoveDown()
	selected, err := session.Enter(ctx)
	if err != nil {
		return fmt.Errorf("opening result: %w", err)
	}
	cmd.Printf("Opened %s\n", selected.Title)
	return nil
}

// awaitSettled waits until a session is no longer searching after its
// first commit.
func awaitSettled(
	ctx context.Context, changes <-chan struct{}, snapshot func() domain.SessionState,
) (domain.SessionState, error) {
	for {
		select {
		case <-ctx.Done():
			return domain.SessionState{}, fmt.Errorf("waiting for results: %w", ctx.Err())
		case _, ok := <-changes:
			state := snapshot()
			if !ok {
				return state, domain.ErrSessionClosed
			}
			if state.Status == domain.SearchStatusSearching {
				continue
			}
			if state.HasSearched || state.NeedsMoreInput {
				return state, nil
			}
		}
	}
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, minLength int, results []domain.SearchResult) error {
	if len(results) == 0 {
		if len([]rune(query)) < minLength {
			cmd.Printf("Type at least %d characters to search.\n", minLength)
			return nil
		}
		cmd.Println("No results found.")
		return nil
	}

	groups := []domain.ResultGroup{{Heading: domain.UngroupedHeading, Results: results}}
	if searchGroup {
		groups = domain.GroupResults(results, true)
	}

	n := 0
	for _, group := range groups {
		cmd.Printf("%s:\n", group.Heading)
		for i := range group.Results {
			n++
			r := group.Results[i]
			cmd.Printf("  [%d] %s\n", n, r.Title)
			if r.Description != nil && *r.Description != "" {
				cmd.Printf("      %s\n", *r.Description)
			}
			if r.Target != nil {
				cmd.Printf("      %s\n", *r.Target)
			}
		}
		cmd.Println()
	}

	return nil
}
