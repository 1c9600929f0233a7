package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"fmt"

	"synclayer/internal/domain"
	"synclayer/internal/util/memzero"
)

var errNotP256 = errors.New("key is not on P-256")

// GenerateP256 returns a fresh P-256 key pair. The private half is PKCS #8
// DER, the public half the 65-byte uncompressed point.
func GenerateP256() (domain.KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return domain.KeyPair{}, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return domain.KeyPair{}, err
	}
	var pub domain.P256Public
	copy(pub[:], priv.PublicKey().Bytes())
	return domain.KeyPair{Private: der, Public: pub}, nil
}

// ImportPrivate validates a PKCS #8 encoded P-256 private key.
func ImportPrivate(der []byte) (domain.P256Private, error) {
	if _, err := parsePrivate(der); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, err)
	}
	return append(domain.P256Private(nil), der...), nil
}

// PublicFromPrivate returns the uncompressed public point for priv.
func PublicFromPrivate(priv domain.P256Private) (domain.P256Public, error) {
	var pub domain.P256Public
	k, err := parsePrivate(priv)
	if err != nil {
		return pub, fmt.Errorf("%w: %v", domain.ErrInvalidLocalKey, err)
	}
	copy(pub[:], k.PublicKey().Bytes())
	return pub, nil
}

// ImportPublic accepts either the 65-byte uncompressed point or a
// SubjectPublicKeyInfo DER structure and returns the uncompressed point.
//
// Undecodable input yields ErrInvalidKeyEncoding; a well-formed encoding of a
// point that is not on the curve yields ErrInvalidPeerKey.
func ImportPublic(b []byte) (domain.P256Public, error) {
	var pub domain.P256Public
	if len(b) == domain.PublicKeySize && b[0] == 0x04 {
		if _, err := ecdh.P256().NewPublicKey(b); err != nil {
			return pub, domain.ErrInvalidPeerKey
		}
		copy(pub[:], b)
		return pub, nil
	}

	k, err := x509.ParsePKIXPublicKey(b)
	if err != nil {
		return pub, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, err)
	}
	var ek *ecdh.PublicKey
	switch k := k.(type) {
	case *ecdsa.PublicKey:
		if k.Curve != elliptic.P256() {
			return pub, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, errNotP256)
		}
		if ek, err = k.ECDH(); err != nil {
			return pub, domain.ErrInvalidPeerKey
		}
	case *ecdh.PublicKey:
		if k.Curve() != ecdh.P256() {
			return pub, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, errNotP256)
		}
		ek = k
	default:
		return pub, fmt.Errorf("%w: unsupported key type %T", domain.ErrInvalidKeyEncoding, k)
	}
	copy(pub[:], ek.Bytes())
	return pub, nil
}

// ExportPublicSPKI encodes pub as SubjectPublicKeyInfo DER, the form browser
// clients import with WebCrypto's "spki" format.
func ExportPublicSPKI(pub domain.P256Public) ([]byte, error) {
	k, err := ecdh.P256().NewPublicKey(pub.Slice())
	if err != nil {
		return nil, domain.ErrInvalidPeerKey
	}
	return x509.MarshalPKIXPublicKey(k)
}

// DeriveSharedSecret computes the P-256 ECDH shared secret between the local
// private key and the peer's public point. The identity point and points off
// the curve are rejected with ErrInvalidPeerKey.
func DeriveSharedSecret(local domain.P256Private, peer domain.P256Public) (domain.SharedSecret, error) {
	var out domain.SharedSecret

	priv, err := parsePrivate(local)
	if err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrInvalidLocalKey, err)
	}
	pub, err := ecdh.P256().NewPublicKey(peer.Slice())
	if err != nil {
		return out, domain.ErrInvalidPeerKey
	}
	secret, err := priv.ECDH(pub)
	if err != nil {
		return out, domain.ErrInvalidPeerKey
	}
	copy(out[:], secret)
	memzero.Zero(secret)
	return out, nil
}

func parsePrivate(der []byte) (*ecdh.PrivateKey, error) {
	if len(der) == 0 {
		return nil, errors.New("empty key")
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	switch k := k.(type) {
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return nil, errNotP256
		}
		return k.ECDH()
	case *ecdh.PrivateKey:
		if k.Curve() != ecdh.P256() {
			return nil, errNotP256
		}
		return k, nil
	default:
		return nil, fmt.Errorf("unsupported key type %T", k)
	}
}
