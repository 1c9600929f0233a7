package types

// Fixed sizes of the migration wire format.
const (
	PublicKeySize    = 65 // uncompressed SEC 1 P-256 point
	NonceSize        = 12
	TagSize          = 16
	SharedSecretSize = 32
	MinFrameSize     = PublicKeySize + NonceSize + TagSize
)

// P256Public is an uncompressed P-256 point (0x04 || X || Y).
type P256Public [PublicKeySize]byte

// Slice returns the key as a []byte.
func (p P256Public) Slice() []byte { return p[:] }

// IsZero reports whether p is unset.
func (p P256Public) IsZero() bool { return p == P256Public{} }

// P256Private is a PKCS #8 DER encoded P-256 private key.
type P256Private []byte

// Slice returns the key as a []byte.
func (k P256Private) Slice() []byte { return k }

// SharedSecret is the raw ECDH output, used directly as the AES-256-GCM key.
type SharedSecret [SharedSecretSize]byte

// Slice returns the secret as a []byte.
func (s *SharedSecret) Slice() []byte { return s[:] }

// Nonce is an AES-GCM nonce.
type Nonce [NonceSize]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// KeyPair is an ephemeral P-256 key pair generated for a single migration attempt.
type KeyPair struct {
	Private P256Private `json:"private"`
	Public  P256Public  `json:"public"`
}
