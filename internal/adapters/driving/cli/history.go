package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the search history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all search history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if historyClear {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := searchService.ClearSearchHistory(ctx); err != nil {
			return err
		}
		cmd.Println("Search history cleared.")
		return nil
	}

	entries := searchService.SearchHistory()
	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("  %s  (%dx, last %s)\n",
			e.Text, e.Frequency, e.Timestamp.Format("2006-01-02 15:04"))
	}
	return nil
}
