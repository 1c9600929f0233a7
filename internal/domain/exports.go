package domain

import (
	interfaces "synclayer/internal/domain/interfaces"
	types "synclayer/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username         = types.Username
	PIN              = types.PIN
	Fingerprint      = types.Fingerprint
	Slot             = types.Slot
	P256Public       = types.P256Public
	P256Private      = types.P256Private
	SharedSecret     = types.SharedSecret
	Nonce            = types.Nonce
	KeyPair          = types.KeyPair
	Role             = types.Role
	Status           = types.Status
	WireFrame        = types.WireFrame
	MigrationRequest = types.MigrationRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore     = interfaces.KeyValueStore
	ExpiryHandle      = interfaces.ExpiryHandle
	EphemeralKeyStore = interfaces.EphemeralKeyStore
	RendezvousClient  = interfaces.RendezvousClient
	SecretService     = interfaces.SecretService
)

const (
	SlotSecretBlob   = types.SlotSecretBlob
	SlotEphemeralKey = types.SlotEphemeralKey

	PublicKeySize    = types.PublicKeySize
	NonceSize        = types.NonceSize
	TagSize          = types.TagSize
	SharedSecretSize = types.SharedSecretSize
	MinFrameSize     = types.MinFrameSize

	RoleSource      = types.RoleSource
	RoleDestination = types.RoleDestination

	StatusIdle                 = types.StatusIdle
	StatusKeyGenerated         = types.StatusKeyGenerated
	StatusRendezvousRegistered = types.StatusRendezvousRegistered
	StatusPolling              = types.StatusPolling
	StatusDecrypting           = types.StatusDecrypting
	StatusComplete             = types.StatusComplete
	StatusExpired              = types.StatusExpired
	StatusFetchingPeerKey      = types.StatusFetchingPeerKey
	StatusEncrypting           = types.StatusEncrypting
	StatusSubmitting           = types.StatusSubmitting
	StatusSent                 = types.StatusSent
	StatusFailed               = types.StatusFailed
)
