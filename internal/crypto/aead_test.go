package crypto_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

func testKey() *domain.SharedSecret {
	var k domain.SharedSecret
	for i := range k {
		k[i] = byte(i)
	}
	return &k
}

func TestSealOpen_RoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 64, 4096} {
		pt := bytes.Repeat([]byte{0xab}, size)

		nonce, ct, err := crypto.Seal(testKey(), pt)
		require.NoError(t, err)
		assert.Len(t, ct, size+domain.TagSize)

		got, err := crypto.Open(testKey(), nonce, ct)
		require.NoError(t, err)
		assert.Equal(t, len(pt), len(got))
		assert.True(t, bytes.Equal(pt, got))
	}
}

func TestSeal_FreshNonce(t *testing.T) {
	n1, ct1, err := crypto.Seal(testKey(), []byte("same"))
	require.NoError(t, err)
	n2, ct2, err := crypto.Seal(testKey(), []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
	assert.NotEqual(t, ct1, ct2)
}

func TestOpen_EveryBitFlipFails(t *testing.T) {
	nonce, ct, err := crypto.Seal(testKey(), []byte("sixteen byte msg"))
	require.NoError(t, err)

	for i := 0; i < len(ct)*8; i++ {
		tampered := append([]byte(nil), ct...)
		tampered[i/8] ^= 1 << (i % 8)

		pt, err := crypto.Open(testKey(), nonce, tampered)
		require.ErrorIs(t, err, domain.ErrAuthenticationFailed, "bit %d", i)
		require.Nil(t, pt)
	}
}

func TestOpen_WrongKeyOrNonce(t *testing.T) {
	nonce, ct, err := crypto.Seal(testKey(), []byte("payload"))
	require.NoError(t, err)

	other := *testKey()
	other[0] ^= 0xff
	_, err = crypto.Open(&other, nonce, ct)
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)

	nonce[0] ^= 0xff
	_, err = crypto.Open(testKey(), nonce, ct)
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
}

func TestOpen_ShortCiphertext(t *testing.T) {
	_, err := crypto.Open(testKey(), domain.Nonce{}, make([]byte, domain.TagSize-1))
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestFingerprint_Stable(t *testing.T) {
	a := crypto.Fingerprint([]byte("blob"))
	b := crypto.Fingerprint([]byte("blob"))
	c := crypto.Fingerprint([]byte("blob2"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 24) // 20 hex digits + 4 separators
}
