package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/arcgen/internal/app"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Back up and reset the config to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backup, err := container.ConfigLoader.Backup(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up current config to %s\n", backup)
			}
			if _, err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config reset to defaults.")
			return nil
		},
	}

	cmd.AddCommand(show, path, reset)
	return cmd
}
