// Package logging builds the zerolog logger shared by the synclayer binaries.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: info and warning messages
//   - --debug: everything, including each poll of the rendezvous service
//
// Without flags only warnings and errors are shown.
//
// Log lines never carry key material, shared secrets, plaintext or raw
// ciphertext. Lengths and fingerprints are fine.
package logging
