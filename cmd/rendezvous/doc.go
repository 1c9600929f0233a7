// Package main runs the in-memory rendezvous service used by synclayer during
// development and tests. It pairs a destination device's public key with a
// short PIN and holds the sealed payload until the destination fetches it.
//
// HTTP API
//
//	POST /start_migration { "username", "P2" }
//	    Register the destination public key (base64, raw point or SPKI) and
//	    return { "pin", "expires_at" }.
//
//	GET /get_migration_pubkey?pin=P
//	    Return { "P2" } for a live PIN.
//
//	POST /complete_migration { "username", "pin", "encrypted_data" }
//	    Store the sealed payload for the PIN. The username must match.
//
//	GET /fetch_migration_data?username=U&pin=P
//	    Return { "encrypted_data" } once and forget the PIN, or 404
//	    not_yet_available while the source has not submitted.
//
//	GET /healthz
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - PINs are six random decimal digits and expire after --pin-ttl.
//   - Errors are JSON { "error", "code" }.
//   - One JSON access log line per request.
//
// The service never sees plaintext or private keys; it only stores public
// keys and ciphertext.
package main
