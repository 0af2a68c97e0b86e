package cli

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

// errSignatureMismatch makes verify and batch exit non-zero when a
// well-formed signature does not verify.
var errSignatureMismatch = errors.New("signature verification failed")

// secretFlags are shared by derive and sign.
type secretFlags struct {
	curve  string
	secret string
}

func (f secretFlags) keyType() (sigverify.KeyType, error) {
	return sigverify.ParseKeyType(f.curve)
}

func (f secretFlags) secretBytes() ([]byte, error) {
	if f.secret == "" {
		return nil, errors.New("--secret is required")
	}
	b, err := encoding.DecodeHex(f.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse secret")
	}
	return b, nil
}

func (f secretFlags) ed25519Secret() (eddsasig.SecretKey, error) {
	b, err := f.secretBytes()
	if err != nil {
		return eddsasig.SecretKey{}, err
	}
	return eddsasig.ParseSecretKey(b)
}

func (f secretFlags) secp256k1Secret() (ecdsasig.SecretKey, error) {
	b, err := f.secretBytes()
	if err != nil {
		return ecdsasig.SecretKey{}, err
	}
	return ecdsasig.ParseSecretKey(b)
}

// messageArg returns arg as raw bytes, or hex-decoded when isHex is set.
func messageArg(arg string, isHex bool) ([]byte, error) {
	if !isHex {
		return []byte(arg), nil
	}
	b, err := encoding.DecodeHex(arg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse message")
	}
	return b, nil
}
