package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/app"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, app.DefaultRelayURL, cfg.RelayURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, 5*time.Minute, cfg.KeyTTL.Duration)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout.Duration)
	assert.Equal(t, 3, cfg.SubmitAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	body := `
relay_url = "https://relay.example.com"
username = "alice"
poll_interval = "2s"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFileName), []byte(body), 0o600))

	cfg, err := app.LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "https://relay.example.com", cfg.RelayURL)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, 2*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, 5*time.Minute, cfg.KeyTTL.Duration, "unset keys keep defaults")
}

func TestLoadConfig_RejectsUnknownKeysAndBadDurations(t *testing.T) {
	for name, body := range map[string]string{
		"unknown key":  `relay = "x"`,
		"bad duration": `key_ttl = "five minutes"`,
	} {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFileName), []byte(body), 0o600))
			_, err := app.LoadConfig(home)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.Username = "bob"
	cfg.Passphrase = "never-written"
	cfg.KeyTTL = app.Duration{Duration: 3 * time.Minute}
	require.NoError(t, app.SaveConfig(cfg))

	b, err := os.ReadFile(filepath.Join(cfg.Home, app.ConfigFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "never-written")
	assert.Contains(t, string(b), `key_ttl = "3m0s"`)

	got, err := app.LoadConfig(cfg.Home)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, 3*time.Minute, got.KeyTTL.Duration)
}

func TestConfig_Validate(t *testing.T) {
	bad := []func(*app.Config){
		func(c *app.Config) { c.RelayURL = "ftp://relay" },
		func(c *app.Config) { c.RelayURL = "" },
		func(c *app.Config) { c.PollInterval = app.Duration{} },
		func(c *app.Config) { c.PollInterval = app.Duration{Duration: 10 * time.Minute} },
		func(c *app.Config) { c.SubmitAttempts = 0 },
	}
	for i, mutate := range bad {
		cfg := app.DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestNewWire_RequiresPassphrase(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	_, err := app.NewWire(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, app.ErrPassphraseRequired)

	cfg.Passphrase = "Str0ng!Passphrase#1"
	w, err := app.NewWire(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, w.Migration)
	assert.Equal(t, cfg.MigrationConfig(), w.Migration.Config())
}
