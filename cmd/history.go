package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"receiptscan/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously processed receipts",
	Long: `History lists the results stored with "process --store", oldest
first, with the headline fields and confidence of each run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfg.HistoryPath); os.IsNotExist(err) {
		fmt.Println("No history yet. Store a result with: receiptscan process <file> --store")
		return nil
	}

	store, err := history.NewBoltStore(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history yet. Store a result with: receiptscan process <file> --store")
		return nil
	}

	for _, entry := range entries {
		establishment := entry.Result.Data.Establishment
		if establishment == "" {
			establishment = "(unknown)"
		}
		total := "-"
		if entry.Result.Data.TotalValue != nil {
			total = fmt.Sprintf("R$ %.2f", *entry.Result.Data.TotalValue)
		}
		fmt.Printf("%s  %-20s %-24s %9s  %3.0f%%\n",
			entry.ProcessedAt.Format("2006-01-02 15:04"),
			entry.Source,
			establishment,
			total,
			entry.Result.Confidence*100)
	}
	return nil
}
