package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

var queryResults int

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Run a single query against the corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		svc, err := a.index.Get(cmd.Context())
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		results, err := svc.Query(cmd.Context(), question, queryResults)
		if err != nil {
			return err
		}

		printResults(cmd, question, results)
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVarP(&queryResults, "results", "n", 3, "number of results to return")
}

func printResults(cmd *cobra.Command, question string, results []domain.QueryResult) {
	cmd.Printf("Results for: %q\n", question)
	cmd.Println(strings.Repeat("=", 50))
	for i, r := range results {
		content := r.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		cmd.Printf("\n%d. %s\n", i+1, r.Title)
		cmd.Printf("   Similarity Score: %.3f\n", r.SimilarityScore)
		cmd.Printf("   Content: %s\n", content)
		cmd.Println(strings.Repeat("-", 30))
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results.")
	}
}
