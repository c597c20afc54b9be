package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question over the indexed documents",
	Long: `Embeds the question and returns the most similar indexed chunks,
ranked by cosine similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top", "k", 5, "maximum number of matches")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	if err := checkEmbedder(cmd.Context()); err != nil {
		return err
	}

	matches, err := queryService.Query(cmd.Context(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printMatches(cmd, matches)
	return nil
}

// printMatches renders query matches, best first.
func printMatches(cmd *cobra.Command, matches []domain.QueryMatch) {
	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return
	}

	for i, m := range matches {
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, m.Path, m.Sequence, m.Score)
		cmd.Printf("      %s\n", snippet(m.Content))
	}
}

// snippet truncates chunk content to a single display line, cutting on
// a rune boundary so multi-byte characters are never split.
func snippet(content string) string {
	const max = 160
	for i, r := range content {
		if r == '\n' {
			content = content[:i]
			break
		}
	}
	if len(content) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		return content[:cut] + "..."
	}
	return content
}
