package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"synclayer/internal/domain"
)

// migrate receive: destination role. Shows the PIN and waits for the source.
func migrateReceiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Receive your secret from another device",
		Long: `Generates a one-time migration key, registers it with the rendezvous
service and prints a PIN. Enter the PIN on the device that holds your secret
with "synclayer migrate send". The key is destroyed after use or when it
expires.`,
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

			sess, err := w.Migration.StartDestination(ctx, user)
			if err != nil {
				return err
			}

			fmt.Println("Migration PIN: " + highlight.Sprint(sess.PIN()))
			fmt.Printf("Enter it on your other device within %s (until %s).\n",
				time.Until(sess.Deadline()).Round(time.Second), sess.Deadline().Format(time.Kitchen))

			spin, cleanup := startSpinner("Waiting for the other device...")
			defer cleanup()
			sess.OnTransition(func(_, to domain.Status) {
				if to == domain.StatusDecrypting {
					spin.Lock()
					spin.Suffix = " Decrypting..."
					spin.Unlock()
				}
			})

			err = w.Migration.AwaitPayload(ctx, sess)
			switch sess.Status() {
			case domain.StatusComplete:
				fp, _ := w.Secrets.FingerprintSecret()
				spin.FinalMSG = successMark + " Secret received. Fingerprint: " + highlight.Sprint(fp) + "\n"
				return nil
			case domain.StatusExpired:
				spin.FinalMSG = warnMark + " The PIN expired. Run migrate receive again for a new one.\n"
			default:
				spin.FinalMSG = errorMark + " Migration failed\n"
			}
			if err == nil {
				err = sess.Err()
			}
			if err == nil || errors.Is(err, context.Canceled) {
				err = domain.ErrMigrationCanceled
			}
			return err
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account whose secret to receive")
	return cmd
}
