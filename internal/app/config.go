package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"synclayer/internal/services/migration"
)

// ConfigFileName is the optional config file inside the home directory.
const ConfigFileName = "config.toml"

// DefaultRelayURL is used when neither the file nor a flag names a relay.
const DefaultRelayURL = "http://127.0.0.1:8080"

// Duration is a time.Duration that reads and writes as "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `toml:"-"` // config directory, e.g. $HOME/.synclayer
	Passphrase string `toml:"-"` // seals the local store; never written to disk

	RelayURL       string   `toml:"relay_url"`
	Username       string   `toml:"username,omitempty"`
	PollInterval   Duration `toml:"poll_interval"`
	KeyTTL         Duration `toml:"key_ttl"`
	HTTPTimeout    Duration `toml:"http_timeout"`
	SubmitAttempts int      `toml:"submit_attempts"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		RelayURL:       DefaultRelayURL,
		PollInterval:   Duration{migration.DefaultPollInterval},
		KeyTTL:         Duration{migration.DefaultKeyTTL},
		HTTPTimeout:    Duration{15 * time.Second},
		SubmitAttempts: migration.DefaultSubmitAttempts,
	}
}

// LoadConfig returns the defaults overlaid with <home>/config.toml when it
// exists.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Home = home

	path := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("read %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// SaveConfig writes the file-backed fields of cfg to <home>/config.toml.
func SaveConfig(cfg Config) error {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(cfg.Home, ConfigFileName), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(c.RelayURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("relay_url %q is not an http(s) URL", c.RelayURL)
	}
	if c.PollInterval.Duration <= 0 || c.KeyTTL.Duration <= 0 || c.HTTPTimeout.Duration <= 0 {
		return errors.New("poll_interval, key_ttl and http_timeout must be positive")
	}
	if c.PollInterval.Duration >= c.KeyTTL.Duration {
		return errors.New("poll_interval must be shorter than key_ttl")
	}
	if c.SubmitAttempts < 1 {
		return errors.New("submit_attempts must be at least 1")
	}
	return nil
}

// MigrationConfig projects the tuning knobs of the migration service.
func (c Config) MigrationConfig() migration.Config {
	return migration.Config{
		PollInterval:   c.PollInterval.Duration,
		KeyTTL:         c.KeyTTL.Duration,
		SubmitAttempts: c.SubmitAttempts,
	}
}
