package sigverify

import (
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

const (
	ed25519KeySize   = eddsasig.PublicKeySize
	secp256k1KeySize = ecdsasig.PublicKeyRawSize
)

// PublicKey is a tagged chain-native public key.
type PublicKey struct {
	Type KeyType
	Data []byte
}

// NewEd25519PublicKey tags an Ed25519 public key.
func NewEd25519PublicKey(pub eddsasig.PublicKey) PublicKey {
	return PublicKey{Type: KeyTypeEd25519, Data: append([]byte(nil), pub[:]...)}
}

// NewSecp256k1PublicKey tags a raw secp256k1 public key.
func NewSecp256k1PublicKey(pub ecdsasig.PublicKeyRaw) PublicKey {
	return PublicKey{Type: KeyTypeSecp256k1, Data: append([]byte(nil), pub[:]...)}
}

// DecodePublicKey splits encoded into its curve tag and key data and checks
// the data length for the tag.
func DecodePublicKey(encoded []byte) (PublicKey, error) {
	if len(encoded) == 0 {
		return PublicKey{}, errors.Wrap(sigerr.ErrInvalidKeyEncoding, "encoded public key is empty")
	}
	pk := PublicKey{Type: KeyType(encoded[0]), Data: append([]byte(nil), encoded[1:]...)}
	if err := pk.Validate(); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// Validate checks that the tag is known and the data has the tag's length.
func (pk PublicKey) Validate() error {
	size, ok := pk.Type.dataSize()
	if !ok {
		return errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "unknown curve tag %d", byte(pk.Type))
	}
	if len(pk.Data) != size {
		return sigerr.InvalidLength(sigerr.ErrInvalidKeyEncoding, pk.Type.String()+" key data", size, len(pk.Data))
	}
	return nil
}

// Bytes returns the tag followed by the key data.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, 0, 1+len(pk.Data))
	out = append(out, byte(pk.Type))
	return append(out, pk.Data...)
}

// String returns the "<curve>:<base58>" text form.
func (pk PublicKey) String() string {
	return pk.Type.String() + ":" + base58.Encode(pk.Data)
}

// ParsePublicKey parses the text form produced by PublicKey.String. A value
// without a curve prefix is taken as ed25519.
func ParsePublicKey(s string) (PublicKey, error) {
	curve, data := "ed25519", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		curve, data = s[:i], s[i+1:]
	}
	kt, err := ParseKeyType(curve)
	if err != nil {
		return PublicKey{}, err
	}
	raw, err := base58.Decode(data)
	if err != nil {
		return PublicKey{}, errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "public key %q: %v", s, err)
	}
	pk := PublicKey{Type: kt, Data: raw}
	if err := pk.Validate(); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}
