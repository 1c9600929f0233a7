package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"synclayer/internal/domain"
)

// Seal encrypts plaintext under key with AES-256-GCM and a fresh random nonce.
// The returned ciphertext carries the 16-byte tag at its end.
func Seal(key *domain.SharedSecret, plaintext []byte) (domain.Nonce, []byte, error) {
	var nonce domain.Nonce
	aead, err := newGCM(key)
	if err != nil {
		return nonce, nil, err
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, nil, err
	}
	return nonce, aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// Open authenticates and decrypts ciphertext. No plaintext is returned unless
// the tag verifies.
func Open(key *domain.SharedSecret, nonce domain.Nonce, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < domain.TagSize {
		return nil, domain.ErrMalformedPayload
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return pt, nil
}

func newGCM(key *domain.SharedSecret) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.Slice())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
