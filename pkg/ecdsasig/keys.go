package ecdsasig

import (
	"encoding/hex"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

const (
	SecretKeySize             = 32
	PublicKeyCompressedSize   = 33
	PublicKeyUncompressedSize = 65
	PublicKeyRawSize          = 64

	headerCompressedEven byte = 0x02
	headerCompressedOdd  byte = 0x03
	headerUncompressed   byte = 0x04
)

// CurveOrder is the order n of the secp256k1 base point.
var CurveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// HalfOrder is n/2, the largest s accepted as low-S.
var HalfOrder = new(big.Int).Rsh(CurveOrder, 1)

// SecretKey is a secp256k1 scalar in big-endian form. Valid keys are in [1, n-1].
type SecretKey [SecretKeySize]byte

// PublicKeyCompressed is {0x02|0x03}‖x; the header carries the parity of y.
type PublicKeyCompressed [PublicKeyCompressedSize]byte

// PublicKeyUncompressed is 0x04‖x‖y.
type PublicKeyUncompressed [PublicKeyUncompressedSize]byte

// PublicKeyRaw is x‖y without a header, as used by chain-native keys.
type PublicKeyRaw [PublicKeyRawSize]byte

// ParseSecretKey copies b into a SecretKey after checking its length and range.
func ParseSecretKey(b []byte) (SecretKey, error) {
	var sk SecretKey
	if len(b) != SecretKeySize {
		return sk, sigerr.InvalidLength(sigerr.ErrInvalidKeyEncoding, "secp256k1 secret key", SecretKeySize, len(b))
	}
	copy(sk[:], b)
	if _, err := sk.privateKey(); err != nil {
		return SecretKey{}, err
	}
	return sk, nil
}

// privateKey converts sk to a decred private key, rejecting zero and
// values not below the curve order. PrivKeyFromBytes would silently reduce
// them instead.
func (sk SecretKey) privateKey() (*secp256k1.PrivateKey, error) {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetBytes((*[32]byte)(&sk))
	if overflow != 0 || scalar.IsZero() {
		return nil, errors.Wrap(sigerr.ErrInvalidKeyEncoding, "secp256k1 secret key out of range")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// DerivePublicKey multiplies the base point by sk and returns both encodings
// of the result.
func DerivePublicKey(sk SecretKey) (PublicKeyCompressed, PublicKeyUncompressed, error) {
	var (
		compressed   PublicKeyCompressed
		uncompressed PublicKeyUncompressed
	)
	key, err := sk.privateKey()
	if err != nil {
		return compressed, uncompressed, err
	}
	defer key.Zero()

	pub := key.PubKey()
	copy(compressed[:], pub.SerializeCompressed())
	copy(uncompressed[:], pub.SerializeUncompressed())
	return compressed, uncompressed, nil
}

// Raw drops the 0x04 header.
func (p PublicKeyUncompressed) Raw() PublicKeyRaw {
	var raw PublicKeyRaw
	copy(raw[:], p[1:])
	return raw
}

// Uncompressed re-adds the 0x04 header.
func (p PublicKeyRaw) Uncompressed() PublicKeyUncompressed {
	var u PublicKeyUncompressed
	u[0] = headerUncompressed
	copy(u[1:], p[:])
	return u
}

func (p PublicKeyCompressed) String() string   { return hex.EncodeToString(p[:]) }
func (p PublicKeyUncompressed) String() string { return hex.EncodeToString(p[:]) }
func (p PublicKeyRaw) String() string          { return hex.EncodeToString(p[:]) }

// parsePublicKey accepts a compressed, uncompressed or raw public key and
// checks that it is a point on the curve.
func parsePublicKey(pub []byte) (*secp256k1.PublicKey, error) {
	var serialized []byte
	switch {
	case len(pub) == PublicKeyCompressedSize && (pub[0] == headerCompressedEven || pub[0] == headerCompressedOdd):
		serialized = pub
	case len(pub) == PublicKeyUncompressedSize && pub[0] == headerUncompressed:
		serialized = pub
	case len(pub) == PublicKeyRawSize:
		raw := PublicKeyRaw(pub)
		u := raw.Uncompressed()
		serialized = u[:]
	case len(pub) == 0:
		return nil, errors.Wrap(sigerr.ErrInvalidKeyEncoding, "secp256k1 public key is empty")
	default:
		return nil, errors.Wrapf(sigerr.ErrInvalidKeyEncoding,
			"secp256k1 public key: unsupported encoding (%d bytes, header 0x%02x)", len(pub), pub[0])
	}

	key, err := secp256k1.ParsePubKey(serialized)
	if err != nil {
		return nil, errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "secp256k1 public key: %v", err)
	}
	return key, nil
}
