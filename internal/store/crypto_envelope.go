package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"synclayer/internal/domain"
)

// The current supported version of the sealed slot format stored on disk.
const slotFormatVersion = 1

// Returned when the passphrase is incorrect or the file was modified, corrupted
// or copied in from another slot.
var errWrongPassphrase = errors.New("wrong passphrase or corrupted slot")

// sealed is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Slot   string `json:"slot"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and a fresh salt and encrypts raw, binding
// the slot name as associated data.
func seal(passphrase string, slot domain.Slot, raw []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is single use
	ct := aead.Seal(nil, nonce[:], raw, additionalData(slot, salt[:]))

	return json.Marshal(sealed{
		V:      slotFormatVersion,
		Slot:   slot.String(),
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// unseal opens a sealed slot file using a key derived from passphrase.
func unseal(passphrase string, slot domain.Slot, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", slot, err)
	}
	if s.V > slotFormatVersion {
		return nil, fmt.Errorf("unsupported slot format version %d", s.V)
	}
	if s.Slot != slot.String() {
		return nil, errWrongPassphrase
	}

	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, additionalData(slot, s.Salt))
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}

func additionalData(slot domain.Slot, salt []byte) []byte {
	ad := make([]byte, 0, len(slot)+len(salt))
	ad = append(ad, slot.String()...)
	return append(ad, salt...)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
