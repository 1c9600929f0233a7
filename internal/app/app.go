package app

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the default home directory.
const HomeEnv = "SYNCLAYER_HOME"

// PassphraseEnv supplies the store passphrase when no flag is given.
const PassphraseEnv = "SYNCLAYER_PASSPHRASE"

// DefaultHome returns $SYNCLAYER_HOME, or ~/.synclayer.
func DefaultHome() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".synclayer")
	}
	return ".synclayer"
}

// EnsureHome creates the home directory with owner-only permissions.
func EnsureHome(home string) error {
	return os.MkdirAll(home, 0o700)
}
