package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"synclayer/internal/app"
	"synclayer/internal/logging"
)

var (
	home       string
	passphrase string
	relayURL   string
	username   string
	verbose    bool
	debug      bool

	cfg app.Config
	log zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "synclayer",
		Short:         "Move your encrypted secret between devices with a one-time PIN",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = app.DefaultHome()
			}
			if err := app.EnsureHome(home); err != nil {
				return err
			}

			var err error
			cfg, err = app.LoadConfig(home)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("relay") {
				cfg.RelayURL = relayURL
			}
			if cmd.Flags().Changed("username") {
				cfg.Username = username
			}
			cfg.Passphrase = passphrase
			if cfg.Passphrase == "" {
				cfg.Passphrase = os.Getenv(app.PassphraseEnv)
			}

			log = logging.New(os.Stderr, verbose, debug)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.synclayer)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting local keys")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "rendezvous base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show progress messages")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "show debug messages")

	root.AddCommand(configCmd(), secretCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

// wire builds the dependency graph from the loaded configuration.
func wire() (*app.Wire, error) {
	return app.NewWire(cfg, log)
}
