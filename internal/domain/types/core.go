package types

// Username identifies the account whose secret is being migrated.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// PIN is the server-issued rendezvous token shown on the destination device and
// typed into the source device. Its format is rendezvous-server policy.
type PIN string

// String returns the string form of the PIN.
func (p PIN) String() string { return string(p) }

// Fingerprint is a short identifier for keys and blobs presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// Slot is a fixed logical name in the local key-value store.
type Slot string

// String returns the string form of the slot name.
func (s Slot) String() string { return string(s) }

// The local store holds exactly these slots.
const (
	// SlotSecretBlob holds the user's encrypted secret (E_S).
	SlotSecretBlob Slot = "secret_blob"
	// SlotEphemeralKey holds the destination's ephemeral private key record.
	SlotEphemeralKey Slot = "migration_ephemeral_key"
)
