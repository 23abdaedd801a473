package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search, catalog and web settings.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key, for example:

  nutri settings set search.group_by_category false
  nutri settings set search.presentation modal_dialog
  nutri settings set catalog.backend sqlite

Flags go before the key; everything after it is read as the key and value.
Run 'nutri settings keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || settingsService == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return settingsService.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errSettingsNotConfigured
		}
		for _, key := range settingsService.Keys() {
			cmd.Println(key)
		}
		return nil
	},
}

func init() {
	// Values such as -1 must reach validation instead of being read as flags.
	settingsSetCmd.Flags().SetInterspersed(false)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	s := settings.Search
	cmd.Println("[Search]")
	cmd.Printf("  Group by category: %s\n", yesNo(s.GroupByCategory))
	cmd.Printf("  Match category: %s\n", yesNo(s.MatchCategory))
	cmd.Printf("  Presentation: %s\n", s.Presentation)
	cmd.Printf("  Result media: %s\n", s.ResultMedia)
	cmd.Printf("  Minimum query length: %d\n", s.MinQueryLength)
	cmd.Printf("  Debounce: %s\n", time.Duration(s.DebounceMS)*time.Millisecond)
	if s.FetchTimeoutMS > 0 {
		cmd.Printf("  Fetch timeout: %s\n", time.Duration(s.FetchTimeoutMS)*time.Millisecond)
	} else {
		cmd.Printf("  Fetch timeout: none\n")
	}
	cmd.Printf("  Result limit: %d\n", s.Limit)
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Backend: %s\n", settings.Catalog.Backend.Description())
	if settings.Catalog.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Catalog.Path)
	}
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", settings.Web.Addr)
	cmd.Printf("  Base URL: %s\n", settings.Web.BaseURL)
	cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Web.RateLimit, settings.Web.Burst)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
