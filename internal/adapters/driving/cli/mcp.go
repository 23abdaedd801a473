package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
foods and read nutrition labels.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, for example to inspect it with MCP Inspector.

Examples:
  # Stdio mode (default)
  nutri mcp serve

  # HTTP mode
  nutri mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "nutri": {
        "command": "/path/to/nutri",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Food:     foodService,
		Settings: settingsService,
	})
	if err != nil {
		return err
	}

	stop := watchCatalog(cmd.Context())
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
