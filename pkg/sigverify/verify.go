// Package sigverify verifies a signature against a tagged chain-native public
// key without knowing the curve in advance. The scheme is chosen from the
// key's curve tag and the signature length alone.
package sigverify

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

// VerifyAny checks signature over data against encodedPubKey (curve tag
// followed by key data).
//
//   - ed25519 tag with a 64-byte signature: pure Ed25519 over data.
//   - secp256k1 tag with a 65-byte r‖s‖recovery_id signature: ECDSA over
//     data, which must be a 32-byte SHA-256 digest.
//
// Any other combination fails with *sigerr.UnsupportedSignatureError. A
// mismatch returns false with a nil error.
func VerifyAny(encodedPubKey, signature, data []byte) (bool, error) {
	if len(encodedPubKey) == 0 {
		return false, errors.Wrap(sigerr.ErrInvalidKeyEncoding, "encoded public key is empty")
	}
	tag := KeyType(encodedPubKey[0])
	keyData := encodedPubKey[1:]

	switch {
	case tag == KeyTypeEd25519 && len(signature) == eddsasig.SignatureSize:
		return verifyEd25519(keyData, signature, data)
	case tag == KeyTypeSecp256k1 && len(signature) == ecdsasig.RecoverableSignatureSize:
		return verifySecp256k1(keyData, signature, data)
	default:
		return false, &sigerr.UnsupportedSignatureError{Tag: byte(tag), Length: len(signature)}
	}
}

// VerifyMessage hashes message once with SHA-256 and passes the digest to
// VerifyAny, which is how the chain checks signatures over arbitrary payloads.
func VerifyMessage(encodedPubKey, signature, message []byte) (bool, error) {
	digest := sighash.Sha256(message)
	return VerifyAny(encodedPubKey, signature, digest[:])
}

// Verify is VerifyAny for an already decoded key.
func (pk PublicKey) Verify(signature, data []byte) (bool, error) {
	return VerifyAny(pk.Bytes(), signature, data)
}

func verifyEd25519(keyData, signature, data []byte) (bool, error) {
	pub, err := eddsasig.ParsePublicKey(keyData)
	if err != nil {
		return false, err
	}
	sig, err := eddsasig.ParseSignature(signature)
	if err != nil {
		return false, err
	}
	return eddsasig.Verify(pub, sig, data)
}

func verifySecp256k1(keyData, signature, data []byte) (bool, error) {
	if len(keyData) != secp256k1KeySize {
		return false, sigerr.InvalidLength(sigerr.ErrInvalidKeyEncoding, "secp256k1 key data", secp256k1KeySize, len(keyData))
	}
	sig, err := ecdsasig.ParseRecoverableSignature(signature)
	if err != nil {
		return false, err
	}
	digest, err := sighash.Sha256FromBytes(data)
	if err != nil {
		return false, err
	}
	return ecdsasig.VerifyPrehashed(keyData, sig.Compact(), digest)
}
