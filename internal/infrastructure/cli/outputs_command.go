package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
	"github.com/doeshing/arcgen/internal/domain"
)

func newOutputsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Inspect the workspace artifacts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recognized artifacts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := container.Artifacts.List()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No outputs yet.")
				return nil
			}
			for _, file := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatOutput(file))
			}
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete every file in the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Artifacts.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workspace cleared.")
			return nil
		},
	}

	var dest string
	archive := &cobra.Command{
		Use:   "zip",
		Short: "Pack every workspace file into a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := container.Artifacts.Archive()
			if err != nil {
				return err
			}
			if dest == "" {
				dest = "arcgen_outputs.zip"
			}
			if err := os.WriteFile(dest, data, domain.SourceFilePermissions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", dest, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
	archive.Flags().StringVarP(&dest, "output", "o", "", "Destination archive path")

	cmd.AddCommand(list, clear, archive)
	return cmd
}

func formatOutput(file domain.OutputFile) string {
	return fmt.Sprintf("%-24s %8s  %s", file.Name, humanize.Bytes(uint64(file.Size)), humanize.Time(file.ModTime))
}
