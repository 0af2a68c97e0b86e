package eddsasig

import (
	"crypto"
	"crypto/rand"
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

// Signature is R‖S produced by pure Ed25519.
type Signature [SignatureSize]byte

// PrehashedSignature is R‖S produced by Ed25519ph.
type PrehashedSignature [SignatureSize]byte

// ParseSignature copies b into a Signature after checking its length.
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, sigerr.InvalidLength(sigerr.ErrInvalidSignatureEncoding, "ed25519 signature", SignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParsePrehashedSignature copies b into a PrehashedSignature after checking
// its length.
func ParsePrehashedSignature(b []byte) (PrehashedSignature, error) {
	sig, err := ParseSignature(b)
	return PrehashedSignature(sig), err
}

func (sig Signature) String() string          { return hex.EncodeToString(sig[:]) }
func (sig PrehashedSignature) String() string { return hex.EncodeToString(sig[:]) }

// Sign signs message with pure Ed25519.
func Sign(sk SecretKey, message []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(sk.expand(), message))
	return sig
}

// SignPrehashed signs a SHA-512 digest with Ed25519ph and ctx.
func SignPrehashed(sk SecretKey, digest sighash.Sha512Digest, ctx Context) (PrehashedSignature, error) {
	var sig PrehashedSignature
	if err := ctx.validate(); err != nil {
		return sig, err
	}

	// rand is only read when Options.AddedRandomness is set.
	out, err := sk.expand().Sign(rand.Reader, digest[:], prehashOptions(ctx))
	if err != nil {
		return sig, errors.Wrap(err, "ed25519ph sign")
	}
	copy(sig[:], out)
	return sig, nil
}

// Verify checks a pure Ed25519 signature.
func Verify(pub PublicKey, sig Signature, message []byte) (bool, error) {
	if err := checkInputs(pub, sig[:]); err != nil {
		return false, err
	}
	return ed25519.VerifyWithOptions(pub[:], message, sig[:], pureOptions), nil
}

// VerifyPrehashed checks an Ed25519ph signature over digest. ctx must match
// the one used to sign.
func VerifyPrehashed(pub PublicKey, sig PrehashedSignature, digest sighash.Sha512Digest, ctx Context) (bool, error) {
	if err := ctx.validate(); err != nil {
		return false, err
	}
	if err := checkInputs(pub, sig[:]); err != nil {
		return false, err
	}
	return ed25519.VerifyWithOptions(pub[:], digest[:], sig[:], prehashOptions(ctx)), nil
}

var pureOptions = &ed25519.Options{
	Verify: ed25519.VerifyOptionsStdLib,
}

func prehashOptions(ctx Context) *ed25519.Options {
	return &ed25519.Options{
		Hash:    crypto.SHA512,
		Context: ctx.value,
		Verify:  ed25519.VerifyOptionsStdLib,
	}
}

// checkInputs separates structural problems from verification failures:
// A must be a curve point and S must be a canonical scalar.
func checkInputs(pub PublicKey, sig []byte) error {
	if err := pub.check(); err != nil {
		return err
	}
	if _, err := new(edwards25519.Scalar).SetCanonicalBytes(sig[32:]); err != nil {
		return errors.Wrap(sigerr.ErrInvalidSignatureEncoding, "ed25519 signature: non-canonical S")
	}
	return nil
}
