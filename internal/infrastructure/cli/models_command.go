package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
)

func newModelsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List configured models in fallback order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			candidates := cfg.CandidateModels("")
			for i, model := range candidates {
				marker := " "
				if i == 0 {
					marker = "*"
				}
				status := "ready"
				switch {
				case model.Endpoint == "":
					status = "offline template"
				case model.AuthEnvVar != "" && os.Getenv(model.AuthEnvVar) == "":
					status = fmt.Sprintf("missing %s", model.AuthEnvVar)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-26s %-28s %s\n", marker, model.Name, model.ModelID, status)
			}
			if active := container.Session.ActiveModel(); active != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nLast request served by: %s\n", active)
			}
			return nil
		},
	}
}
