// Package ephemeral owns the destination device's migration private key.
//
// The key lives in a single store slot as a CBOR record carrying its own
// deadline. Store schedules a cancelable expiry timer; Consume re-checks the
// deadline under the same lock the timer uses, so a key that is past its TTL
// is reported missing even if the timer has not run yet.
package ephemeral
