// Package migration implements the cryptographic core of device-to-device
// secret migration.
//
// # Overview
//
// A destination device publishes an ephemeral P-256 public key through a PIN
// rendezvous service. The source device encrypts the user's secret blob to that
// key and posts the result; the destination decrypts it with the matching
// private key.
//
// # Wire frame
//
//	[0, 65)    source ephemeral public key, uncompressed point
//	[65, 77)   AES-GCM nonce
//	[77, end)  ciphertext || 16-byte tag
//
// The frame travels base64 encoded. Frames shorter than 93 bytes or without an
// uncompressed-point prefix are rejected as ErrMalformedPayload before any
// decryption is attempted.
//
// # Security notes
//
// The raw 32-byte ECDH output is used as the AES-256-GCM key with no KDF step.
// Passing it through HKDF would be stronger but changes the frame semantics for
// existing clients, so it is left as is. Every frame uses a fresh ephemeral key,
// so a key/nonce pair is never reused across attempts.
package migration
