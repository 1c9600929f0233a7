package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"synclayer/internal/domain"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move the local secret to or from another device",
	}
	cmd.AddCommand(migrateReceiveCmd(), migrateSendCmd(), migrateCancelCmd())
	return cmd
}

// migrationUser returns --username or the configured default.
func migrationUser() (domain.Username, error) {
	if cfg.Username == "" {
		return "", errors.New("--username required (or set username in config.toml)")
	}
	return domain.Username(cfg.Username), nil
}
