package domain

import "errors"

// Key errors indicate malformed or unusable key material.
var (
	// ErrInvalidLocalKey indicates the local private key is malformed.
	ErrInvalidLocalKey = errors.New("invalid local private key")

	// ErrInvalidPeerKey indicates the peer public key is not a valid P-256 point.
	ErrInvalidPeerKey = errors.New("invalid peer public key")

	// ErrInvalidKeyEncoding indicates key bytes could not be decoded.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")
)

// Payload errors are terminal for a session and never retried with the same ciphertext.
var (
	// ErrMalformedPayload indicates the wire frame has the wrong length or structure.
	ErrMalformedPayload = errors.New("malformed migration payload")

	// ErrAuthenticationFailed indicates the AEAD tag did not verify.
	ErrAuthenticationFailed = errors.New("migration payload failed authentication")
)

// Local state errors.
var (
	// ErrKeyExpiredOrMissing indicates the destination key expired or was never stored.
	ErrKeyExpiredOrMissing = errors.New("migration key expired or missing; restart the migration on this device")

	// ErrNoLocalSecret indicates there is no secret blob on this device.
	ErrNoLocalSecret = errors.New("no local secret on this device")

	// ErrSessionTerminal indicates the session already reached a terminal state.
	ErrSessionTerminal = errors.New("migration session already finished")

	// ErrWrongRole indicates an operation was invoked on a session of the other role.
	ErrWrongRole = errors.New("operation not valid for this session role")

	// ErrMigrationCanceled indicates the user or caller abandoned the session.
	ErrMigrationCanceled = errors.New("migration canceled")
)

// Rendezvous errors.
var (
	// ErrPinNotFound indicates the PIN is unknown or expired on the server.
	ErrPinNotFound = errors.New("migration PIN not found or expired")

	// ErrRendezvousUnavailable indicates a transient transport failure.
	ErrRendezvousUnavailable = errors.New("rendezvous service unavailable")

	// ErrNotYetAvailable indicates the source has not submitted the payload yet.
	ErrNotYetAvailable = errors.New("migration not yet completed by source device")
)

// Retryable reports whether err is a transient rendezvous condition that a
// polling or submitting loop may retry.
func Retryable(err error) bool {
	return errors.Is(err, ErrRendezvousUnavailable) || errors.Is(err, ErrNotYetAvailable)
}
