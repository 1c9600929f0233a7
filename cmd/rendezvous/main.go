package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"synclayer/internal/logging"
	"synclayer/internal/relay"
)

func main() {
	var (
		addr       string
		pinTTL     time.Duration
		sweepEvery time.Duration
		verbose    bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "rendezvous",
		Short:        "In-memory PIN rendezvous service for synclayer migrations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewJSON(os.Stdout, verbose, debug)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := relay.NewServer(relay.ServerConfig{PinTTL: pinTTL, Log: log})
			go srv.RunJanitor(ctx, sweepEvery)

			hs := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- hs.ListenAndServe() }()
			log.Warn().Str("addr", addr).Dur("pin_ttl", pinTTL).Msg("rendezvous listening")

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&pinTTL, "pin-ttl", relay.DefaultPinTTL, "lifetime of a migration PIN")
	cmd.Flags().DurationVar(&sweepEvery, "sweep", relay.DefaultSweepEvery, "interval between expiry sweeps")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "log every request")
	cmd.Flags().BoolVar(&debug, "debug", false, "log debug details")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
