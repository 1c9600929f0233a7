package interfaces

import domaintypes "synclayer/internal/domain/types"

// SecretService manages the locally held encrypted secret blob (E_S).
type SecretService interface {
	ImportSecret(blob []byte) (domaintypes.Fingerprint, error)
	LoadSecret() ([]byte, error)
	FingerprintSecret() (domaintypes.Fingerprint, error)
}
