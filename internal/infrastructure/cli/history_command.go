package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
	"github.com/doeshing/arcgen/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past generation attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			for _, entry := range entries {
				status := "ok"
				if !entry.Success {
					status = fmt.Sprintf("failed (%d)", entry.ExitCode)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-13s %-10s %s\n",
					humanize.Time(entry.Timestamp), entry.Category, status, truncate(entry.Prompt, 60))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Maximum entries to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by prompt or source substring")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete the audit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
	cmd.AddCommand(clear)
	return cmd
}

// truncate shortens text to at most n display runes. It slices on runes,
// not bytes, so multibyte prompts are never cut mid-character.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n-3]) + "..."
}
