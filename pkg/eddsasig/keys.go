package eddsasig

import (
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

const (
	SecretKeySize = ed25519.SeedSize
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = ed25519.SignatureSize
)

// SecretKey is the 32-byte RFC 8032 seed.
type SecretKey [SecretKeySize]byte

// PublicKey is the encoded curve point A.
type PublicKey [PublicKeySize]byte

// ParseSecretKey copies b into a SecretKey after checking its length.
func ParseSecretKey(b []byte) (SecretKey, error) {
	var sk SecretKey
	if len(b) != SecretKeySize {
		return sk, sigerr.InvalidLength(sigerr.ErrInvalidKeyEncoding, "ed25519 secret key", SecretKeySize, len(b))
	}
	copy(sk[:], b)
	return sk, nil
}

// ParsePublicKey copies b into a PublicKey after checking that it has the
// right length and decodes to a point on the curve.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != PublicKeySize {
		return pub, sigerr.InvalidLength(sigerr.ErrInvalidKeyEncoding, "ed25519 public key", PublicKeySize, len(b))
	}
	copy(pub[:], b)
	if err := pub.check(); err != nil {
		return PublicKey{}, err
	}
	return pub, nil
}

// DerivePublicKey computes A = [s]B from the seed sk.
func DerivePublicKey(sk SecretKey) PublicKey {
	priv := sk.expand()
	var pub PublicKey
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return pub
}

func (sk SecretKey) expand() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(sk[:])
}

// check reports whether pub decodes to a point on the curve.
func (pub PublicKey) check() error {
	if _, err := new(edwards25519.Point).SetBytes(pub[:]); err != nil {
		return errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "ed25519 public key: %v", err)
	}
	return nil
}

func (pub PublicKey) String() string { return hex.EncodeToString(pub[:]) }
