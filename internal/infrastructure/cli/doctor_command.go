package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
	"github.com/doeshing/arcgen/internal/domain"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment a generation attempt depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Doctor.Run(cmd.Context())
			for _, check := range report.Checks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", statusMark(check.Status), check.Name, check.Details)
			}
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return fmt.Errorf("environment not healthy")
			}
			return nil
		},
	}
}

func statusMark(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return colorize(colorGreen, "[ok]  ")
	case domain.HealthWarn:
		return colorize(colorYellow, "[warn]")
	default:
		return colorize(colorRed, "[fail]")
	}
}
