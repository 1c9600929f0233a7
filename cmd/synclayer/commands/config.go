package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"synclayer/internal/app"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage synclayer settings",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

// config init: persist the effective settings (defaults, file, flags).
func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := app.SaveConfig(cfg); err != nil {
				return err
			}
			fmt.Println(successMark + " Wrote " + filepath.Join(cfg.Home, app.ConfigFileName))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "default username for migrations")
	return cmd
}
