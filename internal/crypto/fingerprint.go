package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"synclayer/internal/domain"
)

// Fingerprint returns a short, grouped hex fingerprint of b suitable for
// comparing a blob or key across two devices by eye.
//
// It hashes with SHA-256, truncates to 10 bytes and groups by four hex digits.
func Fingerprint(b []byte) domain.Fingerprint {
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:10])
	groups := make([]string, 0, len(h)/4)
	for i := 0; i < len(h); i += 4 {
		groups = append(groups, h[i:i+4])
	}
	return domain.Fingerprint(strings.Join(groups, "-"))
}
