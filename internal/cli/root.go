// Package cli wires configuration, logging, and the retrieval engine into
// the snipdex commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/config"
	logpkg "github.com/kailas-cloud/snipdex/internal/logger"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "snipdex",
	Short: "Semantic search over a small corpus of tech snippets",
	Long: `snipdex indexes a fixed corpus of text snippets at startup and answers
natural-language queries with ranked matches and similarity scores.

Example usage:
  snipdex serve                     # HTTP API on the configured port
  snipdex mcp                       # MCP server over stdio
  snipdex query "what is sql?"      # one-shot query
  snipdex demo                      # canned demo + interactive loop`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		env := config.GetEnv()

		var err error
		cfg, err = config.Load(env)
		if err != nil {
			return err
		}

		logger, err = logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(demoCmd)
}
