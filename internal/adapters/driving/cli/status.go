package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

var statusAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the processing ledger",
	Long: `Lists what has been indexed and what failed. By default only the
current entry per file is shown; --all includes superseded entries
kept for audit.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "include superseded entries")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	entries, err := ledgerService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list ledger: %w", err)
	}

	shown := 0
	for i := range entries {
		entry := &entries[i]
		if !statusAll && !entry.Active() {
			continue
		}
		printEntry(cmd, entry)
		shown++
	}

	if shown == 0 {
		cmd.Println("Nothing indexed yet.")
	}
	return nil
}

func printEntry(cmd *cobra.Command, entry *domain.LedgerEntry) {
	marker := " "
	if !entry.Active() {
		marker = "s" // superseded
	}
	switch entry.Status {
	case domain.StatusSuccess:
		cmd.Printf("%s %-7s %s (%d chunks, %s)\n",
			marker, entry.Status, entry.Path, entry.ChunkCount,
			entry.ProcessedAt.Format("2006-01-02 15:04"))
	case domain.StatusFailed:
		cmd.Printf("%s %-7s %s: %s (%s)\n",
			marker, entry.Status, entry.Path, entry.Reason,
			entry.ProcessedAt.Format("2006-01-02 15:04"))
	}
}
