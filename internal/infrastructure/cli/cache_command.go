package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
)

func newCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the model response cache",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cached response entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.CacheStore.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty.")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-13s %-22s %s\n",
					entry.Category, entry.Model, humanize.Time(entry.CreatedAt))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(entries))
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.CacheStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}

	cmd.AddCommand(stats, clear)
	return cmd
}
