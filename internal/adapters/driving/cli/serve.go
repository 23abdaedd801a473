package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/web"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web search box and food pages",
	Long: `Serve the food search box over HTTP.

Pages:
  /                      search box (?q= runs a search)
  /foods/<slug>          nutrition label (?serving= or ?slider=)
  /api/search?q=         search results as JSON
  /api/foods/<slug>/label  label as JSON

The listen address defaults to the web.addr setting.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from web.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}
	if foodService == nil {
		return errFoodNotConfigured
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = domain.DefaultAppSettings().Web.Addr
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil && settings.Web.Addr != "" {
				addr = settings.Web.Addr
			}
		}
	}

	server, err := web.NewServer(&web.Ports{
		Search:   searchService,
		Food:     foodService,
		Settings: settingsService,
	})
	if err != nil {
		return err
	}

	stop := watchCatalog(cmd.Context())
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", displayAddr(addr))
	return server.ListenAndServe(cmd.Context(), addr)
}

// watchCatalog follows catalog changes in the background for long-running
// commands. The returned function stops watching.
func watchCatalog(parent context.Context) func() {
	if appServices == nil || appServices.Watch == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(parent)
	go func() {
		if err := appServices.Watch(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("catalog watch stopped: %v", err)
		}
	}()
	return cancel
}

func displayAddr(addr string) string {
	if addr != "" && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
