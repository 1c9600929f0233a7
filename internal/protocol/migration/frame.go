package migration

import (
	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

// Byte offsets of the wire frame: [0,65) sender public key, [65,77) nonce,
// [77,end) ciphertext followed by the 16-byte tag.
const (
	nonceOffset      = domain.PublicKeySize
	ciphertextOffset = domain.PublicKeySize + domain.NonceSize
)

// MarshalFrame lays f out in the fixed binary frame format.
func MarshalFrame(f domain.WireFrame) []byte {
	out := make([]byte, 0, ciphertextOffset+len(f.Ciphertext))
	out = append(out, f.SenderPublic[:]...)
	out = append(out, f.Nonce[:]...)
	out = append(out, f.Ciphertext...)
	return out
}

// UnmarshalFrame splits b into its fields. The fixed-size public key and nonce
// regions are validated before the ciphertext region is sliced; the returned
// ciphertext does not alias b.
func UnmarshalFrame(b []byte) (domain.WireFrame, error) {
	var f domain.WireFrame
	if len(b) < domain.MinFrameSize {
		return f, domain.ErrMalformedPayload
	}
	if b[0] != 0x04 {
		return f, domain.ErrMalformedPayload
	}
	copy(f.SenderPublic[:], b[:nonceOffset])
	copy(f.Nonce[:], b[nonceOffset:ciphertextOffset])
	f.Ciphertext = append([]byte(nil), b[ciphertextOffset:]...)
	return f, nil
}

// Frame returns the base64 transport form of a frame.
func Frame(senderPublic domain.P256Public, nonce domain.Nonce, ciphertext []byte) string {
	return crypto.B64(MarshalFrame(domain.WireFrame{
		SenderPublic: senderPublic,
		Nonce:        nonce,
		Ciphertext:   ciphertext,
	}))
}

// Unframe decodes the base64 transport form of a frame.
func Unframe(s string) (domain.WireFrame, error) {
	b, err := crypto.FromB64(s)
	if err != nil {
		return domain.WireFrame{}, domain.ErrMalformedPayload
	}
	return UnmarshalFrame(b)
}
