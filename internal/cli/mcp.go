package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpTransport "github.com/kailas-cloud/snipdex/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the rag_query tool over MCP stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		// No eager warm here: the index is built lazily by the first tool
		// call, matching the stdio client's lifecycle.
		logger.Info("Starting MCP server", zap.String("transport", "stdio"))

		server := mcpTransport.NewServer(a.index, cfg.Query.DefaultResults, cfg.Query.MaxResults, logger)
		return server.Run(cmd.Context())
	},
}
