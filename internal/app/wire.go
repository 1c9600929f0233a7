package app

import (
	"errors"

	"github.com/rs/zerolog"

	"synclayer/internal/domain"
	"synclayer/internal/relay"
	"synclayer/internal/services/ephemeral"
	"synclayer/internal/services/migration"
	"synclayer/internal/services/secret"
	"synclayer/internal/store"
)

// ErrPassphraseRequired is returned when no passphrase was supplied.
var ErrPassphraseRequired = errors.New("passphrase required (use --passphrase or SYNCLAYER_PASSPHRASE)")

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Store     domain.KeyValueStore
	Secrets   *secret.Service
	Keys      *ephemeral.Lifecycle
	Relay     *relay.HTTP
	Migration *migration.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log zerolog.Logger) (*Wire, error) {
	if cfg.Passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := EnsureHome(cfg.Home); err != nil {
		return nil, err
	}

	// Sealed slot store
	kv := store.NewFileKV(cfg.Home, cfg.Passphrase)

	// Rendezvous client
	rc := relay.NewHTTP(cfg.RelayURL, cfg.HTTPTimeout.Duration)
	rc.Log = log.With().Str("component", "relay").Logger()

	// High-level services
	secrets := secret.New(kv)
	keys := ephemeral.New(kv, nil, log.With().Str("component", "ephemeral").Logger())
	migrations := migration.New(
		secrets,
		keys,
		rc,
		cfg.MigrationConfig(),
		migration.WithLogger(log.With().Str("component", "migration").Logger()),
	)

	return &Wire{
		Store:     kv,
		Secrets:   secrets,
		Keys:      keys,
		Relay:     rc,
		Migration: migrations,
	}, nil
}
