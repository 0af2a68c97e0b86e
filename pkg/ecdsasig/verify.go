package ecdsasig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

// Verify checks sig over sha256(message) against pub.
//
// pub may be compressed, uncompressed or raw. High-S signatures are
// accepted. A mismatch returns false with a nil error.
func Verify(pub []byte, sig Signature, message []byte) (bool, error) {
	return VerifyPrehashed(pub, sig, sighash.Sha256(message))
}

// VerifyPrehashed is Verify for a caller-supplied digest.
func VerifyPrehashed(pub []byte, sig Signature, digest sighash.Sha256Digest) (bool, error) {
	key, err := parsePublicKey(pub)
	if err != nil {
		return false, err
	}
	r, s, err := sig.scalars()
	if err != nil {
		return false, err
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], key), nil
}
