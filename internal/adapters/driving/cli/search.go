package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Find the passages most relevant to a question",
	Long: `Ranks the stored chunks against the question and prints the top
matches without invoking the language model. Useful for checking what an
answer would be grounded on.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of passages (default 8)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output passages as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	passages, err := queryService.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(passages, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal passages: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(passages) == 0 {
		cmd.Println("No matching passages.")
		return nil
	}

	for i, p := range passages {
		cmd.Printf("[%d] %s p.%d (score %.3f)\n", i+1, p.FileName, p.PageStart, p.Score)
		cmd.Println(snippet(p.Text, 200))
		cmd.Println()
	}
	return nil
}

func snippet(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}
