package secret

import (
	"errors"
	"fmt"
	"unicode"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrEmptySecret is returned when importing a zero-length blob.
	ErrEmptySecret = errors.New("secret blob is empty")
)

// Service reads and writes the secret blob through a slot store.
type Service struct {
	store domain.KeyValueStore
}

// New returns a secret service backed by the given store.
func New(s domain.KeyValueStore) *Service { return &Service{store: s} }

// ImportSecret replaces the local secret blob and returns its fingerprint.
func (s *Service) ImportSecret(blob []byte) (domain.Fingerprint, error) {
	if len(blob) == 0 {
		return "", ErrEmptySecret
	}
	if err := s.store.Put(domain.SlotSecretBlob, blob); err != nil {
		return "", err
	}
	return crypto.Fingerprint(blob), nil
}

// LoadSecret returns the local secret blob or domain.ErrNoLocalSecret.
func (s *Service) LoadSecret() ([]byte, error) {
	blob, ok, err := s.store.Get(domain.SlotSecretBlob)
	if err != nil {
		return nil, err
	}
	if !ok || len(blob) == 0 {
		return nil, domain.ErrNoLocalSecret
	}
	return blob, nil
}

// FingerprintSecret returns a short fingerprint of the local secret blob.
func (s *Service) FingerprintSecret() (domain.Fingerprint, error) {
	blob, err := s.LoadSecret()
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(blob), nil
}

// CheckPassphrase enforces a basic strength policy on the passphrase that
// seals the local store.
func CheckPassphrase(passphrase string) error {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return ErrWeakPassphrase
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !(hasUpper && hasLower && hasDigit && hasSymbol) {
		return ErrWeakPassphrase
	}
	return nil
}

// Compile-time assertion that Service implements domain.SecretService.
var _ domain.SecretService = (*Service)(nil)
