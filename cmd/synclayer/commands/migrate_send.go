package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"synclayer/internal/domain"
)

// migrate send: source role. Seals the local secret to the device behind PIN.
func migrateSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send PIN",
		Short: "Send your secret to the device showing PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := migrationUser()
			if err != nil {
				return err
			}
			w, err := wire()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			spin, cleanup := startSpinner("Contacting the other device...")
			defer cleanup()

			sess, err := w.Migration.CompleteMigration(ctx, user, domain.PIN(args[0]))
			if err != nil {
				spin.FinalMSG = errorMark + " Migration failed\n"
				return err
			}
			log.Info().Str("session", sess.ID.String()).Msg("payload submitted")
			spin.FinalMSG = fmt.Sprintf("%s Secret sent. Finish on the other device.\n", successMark)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account whose secret to send")
	return cmd
}
