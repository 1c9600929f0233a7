// Package store provides device-local persistence for the migration client.
//
// The store is a fixed set of named slots, not a general namespace:
//   - secret_blob              the user's encrypted secret (E_S)
//   - migration_ephemeral_key  the destination's ephemeral key record
//
// FileKV seals every slot with scrypt + ChaCha20-Poly1305 under the user's
// passphrase and writes it via temp file and rename. MemoryKV keeps slots in
// memory. Both serialise Get, Put and Delete behind a mutex, so a read never
// observes a half-completed delete.
package store
