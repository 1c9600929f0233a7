package secret_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
	"synclayer/internal/services/secret"
	"synclayer/internal/store"
)

func TestService_ImportLoadFingerprint(t *testing.T) {
	svc := secret.New(store.NewMemoryKV())

	_, err := svc.LoadSecret()
	require.ErrorIs(t, err, domain.ErrNoLocalSecret)

	blob := []byte("opaque-encrypted-secret")
	fp, err := svc.ImportSecret(blob)
	require.NoError(t, err)
	assert.Equal(t, crypto.Fingerprint(blob), fp)

	got, err := svc.LoadSecret()
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	again, err := svc.FingerprintSecret()
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}

func TestService_ImportEmpty_Rejected(t *testing.T) {
	svc := secret.New(store.NewMemoryKV())
	_, err := svc.ImportSecret(nil)
	assert.ErrorIs(t, err, secret.ErrEmptySecret)
}

func TestCheckPassphrase(t *testing.T) {
	cases := map[string]bool{
		"short":                false,
		"alllowercase1234!":    false,
		"NoSymbolsHere1234":    false,
		"Str0ng!Passphrase#1":  true,
		"Another-Good-0ne-Pw?": true,
	}
	for pass, ok := range cases {
		err := secret.CheckPassphrase(pass)
		if ok {
			assert.NoError(t, err, pass)
		} else {
			assert.ErrorIs(t, err, secret.ErrWeakPassphrase, pass)
		}
	}
}
