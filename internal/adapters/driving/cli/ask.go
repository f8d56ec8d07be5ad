package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askitty/askitty/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Embeds the question, ranks every stored chunk by cosine similarity
and has the language model answer strictly from the top passages. The answer
cites its sources as [n] markers resolved below it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	answer, err := queryService.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Answer)
	printReferences(cmd, answer.References)
	return nil
}

func printReferences(cmd *cobra.Command, refs []domain.Passage) {
	if len(refs) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("References:")
	for i, ref := range refs {
		cmd.Printf("  [%d] %s p.%d (%s)\n", i+1, ref.FileName, ref.PageStart, ref.SourceKey)
	}
}
