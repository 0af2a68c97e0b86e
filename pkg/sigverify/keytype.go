package sigverify

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

// KeyType is the one-byte curve tag that prefixes a chain-native public key.
type KeyType byte

const (
	// KeyTypeEd25519 tags a 32-byte Ed25519 public key.
	KeyTypeEd25519 KeyType = 0
	// KeyTypeSecp256k1 tags a 64-byte header-less secp256k1 public key (x‖y).
	KeyTypeSecp256k1 KeyType = 1
)

// String returns the curve name used in the text form of public keys.
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeEd25519:
		return "ed25519"
	case KeyTypeSecp256k1:
		return "secp256k1"
	default:
		return "unknown"
	}
}

// dataSize returns the key-data length for kt, or false for an unknown tag.
func (kt KeyType) dataSize() (int, bool) {
	switch kt {
	case KeyTypeEd25519:
		return ed25519KeySize, true
	case KeyTypeSecp256k1:
		return secp256k1KeySize, true
	default:
		return 0, false
	}
}

// ParseKeyType maps a curve name to its tag. Matching is case-insensitive.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ed25519":
		return KeyTypeEd25519, nil
	case "secp256k1":
		return KeyTypeSecp256k1, nil
	default:
		return 0, errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "unknown curve %q", s)
	}
}
