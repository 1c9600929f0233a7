package crypto_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

func TestDeriveSharedSecret_Symmetric(t *testing.T) {
	dest, err := crypto.GenerateP256()
	require.NoError(t, err)
	src, err := crypto.GenerateP256()
	require.NoError(t, err)

	a, err := crypto.DeriveSharedSecret(src.Private, dest.Public)
	require.NoError(t, err)
	b, err := crypto.DeriveSharedSecret(dest.Private, src.Public)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, domain.SharedSecret{}, a)
}

func TestGenerateP256_Shape(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	assert.Equal(t, byte(0x04), kp.Public[0])
	pub, err := crypto.PublicFromPrivate(kp.Private)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, pub)

	other, err := crypto.GenerateP256()
	require.NoError(t, err)
	assert.NotEqual(t, kp.Public, other.Public, "key pairs must never repeat")
}

func TestImportPrivate_RoundTrip(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	got, err := crypto.ImportPrivate(kp.Private)
	require.NoError(t, err)
	assert.Equal(t, kp.Private, got)

	_, err = crypto.ImportPrivate([]byte("not a key"))
	assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)

	_, err = crypto.ImportPrivate(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)
}

func TestImportPublic(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	t.Run("raw point", func(t *testing.T) {
		got, err := crypto.ImportPublic(kp.Public.Slice())
		require.NoError(t, err)
		assert.Equal(t, kp.Public, got)
	})

	t.Run("spki", func(t *testing.T) {
		ek, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKIXPublicKey(&ek.PublicKey)
		require.NoError(t, err)

		got, err := crypto.ImportPublic(der)
		require.NoError(t, err)
		want, err := ek.PublicKey.ECDH()
		require.NoError(t, err)
		assert.Equal(t, want.Bytes(), got.Slice())
	})

	t.Run("wrong curve spki", func(t *testing.T) {
		ek, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKIXPublicKey(&ek.PublicKey)
		require.NoError(t, err)

		_, err = crypto.ImportPublic(der)
		assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := crypto.ImportPublic([]byte{1, 2, 3})
		assert.ErrorIs(t, err, domain.ErrInvalidKeyEncoding)
	})

	t.Run("off curve point", func(t *testing.T) {
		bad := kp.Public
		bad[64] ^= 0x01
		_, err := crypto.ImportPublic(bad.Slice())
		assert.ErrorIs(t, err, domain.ErrInvalidPeerKey)
	})
}

func TestExportPublicSPKI(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	der, err := crypto.ExportPublicSPKI(kp.Public)
	require.NoError(t, err)

	parsed, err := x509.ParsePKIXPublicKey(der)
	require.NoError(t, err)
	_, ok := parsed.(*ecdsa.PublicKey)
	assert.True(t, ok)

	back, err := crypto.ImportPublic(der)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, back)

	_, err = crypto.ExportPublicSPKI(domain.P256Public{})
	assert.ErrorIs(t, err, domain.ErrInvalidPeerKey)
}

func TestDeriveSharedSecret_RejectsBadPeer(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	// All-zero bytes are not a valid encoding; this also covers the identity point.
	_, err = crypto.DeriveSharedSecret(kp.Private, domain.P256Public{})
	assert.ErrorIs(t, err, domain.ErrInvalidPeerKey)

	offCurve := kp.Public
	offCurve[40] ^= 0xff
	_, err = crypto.DeriveSharedSecret(kp.Private, offCurve)
	assert.ErrorIs(t, err, domain.ErrInvalidPeerKey)
}

func TestDeriveSharedSecret_RejectsBadLocal(t *testing.T) {
	kp, err := crypto.GenerateP256()
	require.NoError(t, err)

	_, err = crypto.DeriveSharedSecret(domain.P256Private("junk"), kp.Public)
	assert.ErrorIs(t, err, domain.ErrInvalidLocalKey)
}
