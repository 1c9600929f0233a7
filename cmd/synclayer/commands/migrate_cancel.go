package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrate cancel: drop a pending destination key, e.g. after a crash.
func migrateCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Discard any pending migration key on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			if err := w.Keys.Delete(); err != nil {
				return err
			}
			fmt.Println(successMark + " Pending migration key removed")
			return nil
		},
	}
}
