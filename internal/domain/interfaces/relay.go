package interfaces

import (
	"context"

	domaintypes "synclayer/internal/domain/types"
)

// RendezvousClient talks to the PIN rendezvous service. Every call is a
// fallible network operation; implementations map failures onto the domain
// error taxonomy.
type RendezvousClient interface {
	StartMigration(
		ctx context.Context,
		username domaintypes.Username,
		publicKey domaintypes.P256Public,
	) (domaintypes.PIN, error)
	FetchPublicKey(ctx context.Context, pin domaintypes.PIN) (domaintypes.P256Public, error)

	SubmitPayload(
		ctx context.Context,
		username domaintypes.Username,
		pin domaintypes.PIN,
		wireFrame string,
	) error
	// FetchPayload returns ErrNotYetAvailable until the source has submitted.
	FetchPayload(
		ctx context.Context,
		username domaintypes.Username,
		pin domaintypes.PIN,
	) (string, error)
}
