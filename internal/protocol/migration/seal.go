package migration

import (
	"synclayer/internal/crypto"
	"synclayer/internal/domain"
	"synclayer/internal/util/memzero"
)

// SealForPeer encrypts secret to the destination's public key and returns the
// base64 wire frame.
//
// Steps:
//  1. Generate a fresh ephemeral P-256 key pair; it never leaves this call.
//  2. ECDH between the ephemeral private key and the destination key.
//  3. AES-256-GCM seal of secret under the raw shared secret, random nonce.
//  4. Frame the ephemeral public key, nonce and ciphertext.
func SealForPeer(peer domain.P256Public, secret []byte) (string, error) {
	eph, err := crypto.GenerateP256()
	if err != nil {
		return "", err
	}
	defer memzero.Zero(eph.Private)

	shared, err := crypto.DeriveSharedSecret(eph.Private, peer)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(shared.Slice())

	nonce, ct, err := crypto.Seal(&shared, secret)
	if err != nil {
		return "", err
	}
	return Frame(eph.Public, nonce, ct), nil
}

// OpenFromPeer decrypts a frame with the destination's private key.
//
// Failures are ErrInvalidLocalKey, ErrInvalidPeerKey (sender key not on the
// curve) or ErrAuthenticationFailed (corrupt or forged ciphertext).
func OpenFromPeer(local domain.P256Private, frame domain.WireFrame) ([]byte, error) {
	shared, err := crypto.DeriveSharedSecret(local, frame.SenderPublic)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(shared.Slice())

	return crypto.Open(&shared, frame.Nonce, frame.Ciphertext)
}
