// Package crypto exposes the primitives used by the device migration protocol.
//
// Contents
//
//   - P-256 key generation, import/export and ECDH (GenerateP256,
//     ImportPrivate, ImportPublic, PublicFromPrivate, DeriveSharedSecret)
//   - AES-256-GCM sealing with random 96-bit nonces (Seal, Open)
//   - Short fingerprints for display/logging (Fingerprint)
//   - Base64 helpers for the rendezvous wire (B64, FromB64)
//
// # Notes
//
// Private keys travel as PKCS #8 DER and public keys as 65-byte uncompressed
// points, the encodings used by browser WebCrypto clients. The raw ECDH output
// is the AES key; no KDF is applied, which keeps the frame format compatible
// with existing clients. Callers should wipe shared secrets once done.
package crypto
