// Package cli provides the nutri command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driving"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services are the collaborators the commands run against.
type Services struct {
	Search    driving.SearchService
	Food      driving.FoodService
	Settings  driving.SettingsService
	Navigator driven.Navigator

	// Watch follows catalog changes until ctx ends. Nil when the
	// catalog cannot change underneath the process.
	Watch func(ctx context.Context) error

	// Close releases stores. May be nil.
	Close func() error
}

// BootstrapOptions carries the global flags into a Bootstrapper.
type BootstrapOptions struct {
	ConfigDir string
}

// Bootstrapper builds Services once flags are parsed.
type Bootstrapper func(opts BootstrapOptions) (*Services, error)

var (
	bootstrap       Bootstrapper
	appServices     *Services
	searchService   driving.SearchService
	foodService     driving.FoodService
	settingsService driving.SettingsService
	navigator       driven.Navigator
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "Food search and nutrition labels",
	Long: `nutri searches a food catalog and renders nutrition facts labels
scaled to any serving size.

Run 'nutri tui' for the interactive search box, 'nutri serve' for the
web front end, or 'nutri mcp serve' to expose the catalog to AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.nutri)")
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	if appServices != nil || bootstrap == nil {
		return nil
	}
	built, err := bootstrap(BootstrapOptions{ConfigDir: configDir})
	if err != nil {
		return err
	}
	SetServices(built)
	return nil
}

// SetVersion sets the version reported by `nutri version`.
func SetVersion(v string) {
	version = v
}

// SetBootstrapper installs the function that builds services on first use.
func SetBootstrapper(b Bootstrapper) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrapper.
func SetServices(s *Services) {
	appServices = s
	if s == nil {
		searchService, foodService, settingsService, navigator = nil, nil, nil, nil
		return
	}
	searchService = s.Search
	foodService = s.Food
	settingsService = s.Settings
	navigator = s.Navigator
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if appServices != nil && appServices.Close != nil {
			if err := appServices.Close(); err != nil {
				logger.Warn("closing stores: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

var (
	errSearchNotConfigured   = errors.New("search service not configured")
	errFoodNotConfigured     = errors.New("food service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
)
