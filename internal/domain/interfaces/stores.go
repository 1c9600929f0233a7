package interfaces

import (
	"time"

	domaintypes "synclayer/internal/domain/types"
)

// KeyValueStore is the device-local slot store. Get, Put and Delete must be
// atomic with respect to each other.
type KeyValueStore interface {
	Get(slot domaintypes.Slot) ([]byte, bool, error)
	Put(slot domaintypes.Slot, value []byte) error
	// Delete removes the slot; deleting an absent slot is not an error.
	Delete(slot domaintypes.Slot) error
}

// ExpiryHandle is the cancelable timer guarding a stored ephemeral key.
type ExpiryHandle interface {
	Deadline() time.Time
	// Expired is closed once the timer has fired and the key was removed.
	Expired() <-chan struct{}
	// Stop cancels the timer; it reports whether the call stopped it.
	Stop() bool
}

// EphemeralKeyStore owns the destination's single-slot ephemeral private key.
type EphemeralKeyStore interface {
	Store(key domaintypes.P256Private, ttl time.Duration) (ExpiryHandle, error)
	Consume() (domaintypes.P256Private, error)
	Delete() error
}
