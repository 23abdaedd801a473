package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui"
)

var errNotATerminal = errors.New("the TUI needs an interactive terminal")

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search box",
	Long: `Launch the interactive terminal search box.

Type at least three characters to search. Results are grouped by category
unless search.group_by_category is off. Selecting a result opens its
nutrition label, which can be scaled to any serving size.

Controls:
  ↑/↓       Move the highlight
  Enter     Open the highlighted food
  ←/→       Serving -1g / +1g
  Esc       Clear the search / Back
  ?         Help
  ctrl+c    Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(searchService, foodService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if !isTerminal() {
		return errNotATerminal
	}

	stop := watchCatalog(cmd.Context())
	defer stop()

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
