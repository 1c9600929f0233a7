package types

import "time"

// Role is the part a device plays in a migration.
type Role uint8

const (
	// RoleSource is the already-enrolled device holding the secret.
	RoleSource Role = iota + 1
	// RoleDestination is the newly-enrolled device receiving the secret.
	RoleDestination
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Status is a migration session state.
type Status uint8

const (
	StatusIdle Status = iota

	// Destination states.
	StatusKeyGenerated
	StatusRendezvousRegistered
	StatusPolling
	StatusDecrypting
	StatusComplete
	StatusExpired

	// Source states.
	StatusFetchingPeerKey
	StatusEncrypting
	StatusSubmitting
	StatusSent

	// Shared by both roles.
	StatusFailed
)

// String returns a human-readable state name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusKeyGenerated:
		return "KEY_GENERATED"
	case StatusRendezvousRegistered:
		return "RENDEZVOUS_REGISTERED"
	case StatusPolling:
		return "POLLING"
	case StatusDecrypting:
		return "DECRYPTING"
	case StatusComplete:
		return "COMPLETE"
	case StatusExpired:
		return "EXPIRED"
	case StatusFetchingPeerKey:
		return "FETCHING_PEER_KEY"
	case StatusEncrypting:
		return "ENCRYPTING"
	case StatusSubmitting:
		return "SUBMITTING"
	case StatusSent:
		return "SENT"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusComplete, StatusExpired, StatusFailed, StatusSent:
		return true
	}
	return false
}

// WireFrame is the decoded form of the payload posted by the source:
// sender ephemeral public key, AES-GCM nonce and ciphertext with its tag.
type WireFrame struct {
	SenderPublic P256Public
	Nonce        Nonce
	Ciphertext   []byte
}

// MigrationRequest is the rendezvous server's record for one PIN.
type MigrationRequest struct {
	ID            string    `json:"id"`
	Username      Username  `json:"username"`
	PIN           PIN       `json:"pin"`
	PublicKey     []byte    `json:"public_key"`
	EncryptedData string    `json:"encrypted_data,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}
