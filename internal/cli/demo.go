package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

var demoQuestions = []string{
	"What is machine learning?",
	"How do neural networks work?",
	"What is Python programming?",
	"Tell me about web development",
	"What are databases?",
	"Explain cloud computing",
	"What is cybersecurity?",
	"How does version control work?",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canned demo queries, then an interactive loop",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		svc, err := a.index.Get(cmd.Context())
		if err != nil {
			return err
		}

		for _, question := range demoQuestions {
			results, err := svc.Query(cmd.Context(), question, cfg.Query.DefaultResults)
			if err != nil {
				return err
			}
			printResults(cmd, question, results)
			cmd.Println()
		}

		cmd.Println("Interactive mode - ask your own questions (quit to exit)")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			cmd.Print("\n? Your question: ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(question) {
			case "quit", "exit", "q":
				cmd.Println("Goodbye!")
				return nil
			case "":
				continue
			}

			results, err := svc.Query(cmd.Context(), question, cfg.Query.DefaultResults)
			if err != nil {
				return err
			}
			printResults(cmd, question, results)
		}
		return scanner.Err()
	},
}
