package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
	"github.com/doeshing/arcgen/internal/domain"
)

func newPreviewCommand(container *app.Container) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "preview [drawing file]",
		Short: "Render a DXF from the workspace to a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			} else {
				latest, err := latestDrawing(container)
				if err != nil {
					return err
				}
				target = latest
			}

			data, err := container.Previewer.Render(cmd.Context(), target)
			if err != nil {
				// Preview failures are reported, never fatal.
				fmt.Fprintf(cmd.OutOrStdout(), "Preview unavailable: %v\n", err)
				return nil
			}

			if out == "" {
				out = strings.TrimSuffix(filepath.Base(target), filepath.Ext(target)) + ".preview.png"
			}
			if err := os.WriteFile(out, data, domain.SourceFilePermissions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination image path")
	return cmd
}

func latestDrawing(container *app.Container) (string, error) {
	files, err := container.Artifacts.List()
	if err != nil {
		return "", err
	}
	for _, file := range files {
		if strings.EqualFold(filepath.Ext(file.Name), ".dxf") {
			return file.Path, nil
		}
	}
	return "", fmt.Errorf("no drawing file in %s", container.Artifacts.Dir())
}
