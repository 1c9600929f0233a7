package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
	"synclayer/internal/services/secret"
)

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the encrypted secret held on this device",
	}
	cmd.AddCommand(secretImportCmd(), secretShowCmd())
	return cmd
}

// secret import: read base64 E_S from --file or stdin into the secret slot.
func secretImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a base64 encrypted secret blob on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			// A first import fixes the passphrase, so hold it to the policy.
			if _, err := w.Secrets.LoadSecret(); errors.Is(err, domain.ErrNoLocalSecret) {
				if err := secret.CheckPassphrase(cfg.Passphrase); err != nil {
					return err
				}
			}

			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			b, err := io.ReadAll(io.LimitReader(r, 1<<20))
			if err != nil {
				return err
			}
			blob, err := crypto.FromB64(string(b))
			if err != nil {
				return fmt.Errorf("secret must be base64: %w", err)
			}

			fp, err := w.Secrets.ImportSecret(blob)
			if err != nil {
				return err
			}
			fmt.Println(successMark + " Secret stored. Fingerprint: " + highlight.Sprint(fp))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the secret from this file instead of stdin")
	return cmd
}

// secret show: print only the fingerprint, never the blob.
func secretShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the fingerprint of the local secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			fp, err := w.Secrets.FingerprintSecret()
			if err != nil {
				return err
			}
			fmt.Println(fp)
			return nil
		},
	}
}
