package ecdsasig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

// compactMagicOffset is added to the recovery id in the header byte of a
// decred compact signature (header‖r‖s).
const compactMagicOffset = 27

// Sign signs sha256(message) with sk and returns a low-S signature.
func Sign(sk SecretKey, message []byte) (Signature, error) {
	return SignPrehashed(sk, sighash.Sha256(message))
}

// SignPrehashed signs an already computed SHA-256 digest.
func SignPrehashed(sk SecretKey, digest sighash.Sha256Digest) (Signature, error) {
	key, err := sk.privateKey()
	if err != nil {
		return Signature{}, err
	}
	defer key.Zero()

	r, s := signRFC6979(key, digest)
	if s.IsOverHalfOrder() {
		s.Negate()
	}
	return encodeSignature(&r, &s), nil
}

// signRFC6979 computes the raw (r, s) pair for digest without any
// normalisation of s.
//
// k = RFC 6979 nonce for (d, e)
// R = k*G, r = R.x mod n
// s = k^-1 * (e + r*d) mod n
//
// A new nonce is drawn in the astronomically unlikely case that r or s is
// zero.
func signRFC6979(key *secp256k1.PrivateKey, digest sighash.Sha256Digest) (r, s secp256k1.ModNScalar) {
	privKeyBytes := key.Key.Bytes()
	defer zeroArray(&privKeyBytes)

	var e secp256k1.ModNScalar
	e.SetBytes((*[32]byte)(&digest))

	for iteration := uint32(0); ; iteration++ {
		k := secp256k1.NonceRFC6979(privKeyBytes[:], digest[:], nil, nil, iteration)

		var point secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(k, &point)
		point.ToAffine()

		r.SetBytes(point.X.Bytes())
		if r.IsZero() {
			k.Zero()
			continue
		}

		kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
		k.Zero()

		s.Mul2(&key.Key, &r).Add(&e).Mul(kInv)
		if s.IsZero() {
			continue
		}
		return r, s
	}
}

// SignRecoverable signs sha256(message) and keeps the recovery id.
//
// The r‖s part equals Sign(sk, message). A high-S value from the signer
// yields sigerr.ErrNonCanonicalRecoverableSignature.
func SignRecoverable(sk SecretKey, message []byte) (RecoverableSignature, error) {
	key, err := sk.privateKey()
	if err != nil {
		return RecoverableSignature{}, err
	}
	defer key.Zero()

	digest := sighash.Sha256(message)
	compact := ecdsa.SignCompact(key, digest[:], false)
	return recoverableFromCompact(compact)
}

// recoverableFromCompact converts a decred header‖r‖s compact signature to
// r‖s‖recovery_id and checks that s is already canonical.
func recoverableFromCompact(compact []byte) (RecoverableSignature, error) {
	var out RecoverableSignature
	if len(compact) != RecoverableSignatureSize {
		return out, sigerr.InvalidLength(sigerr.ErrInvalidSignatureEncoding, "compact signature", RecoverableSignatureSize, len(compact))
	}

	recoveryID := compact[0] - compactMagicOffset
	if compact[0] < compactMagicOffset || recoveryID >= recoveryIDLimit {
		return out, errors.Wrapf(sigerr.ErrInvalidSignatureEncoding, "compact signature header 0x%02x", compact[0])
	}

	copy(out[:SignatureSize], compact[1:])
	out[SignatureSize] = recoveryID

	if !out.Compact().IsLowS() {
		return RecoverableSignature{}, errors.Wrapf(sigerr.ErrNonCanonicalRecoverableSignature,
			"signer returned high-S value with recovery id %d", recoveryID)
	}
	return out, nil
}

// RecoverPublicKey returns the public key that produced sig over digest.
func RecoverPublicKey(sig RecoverableSignature, digest sighash.Sha256Digest) (PublicKeyUncompressed, error) {
	var out PublicKeyUncompressed
	if sig.RecoveryID() >= recoveryIDLimit {
		return out, errors.Wrapf(sigerr.ErrInvalidSignatureEncoding, "recovery id %d out of range", sig.RecoveryID())
	}
	if _, _, err := sig.Compact().scalars(); err != nil {
		return out, err
	}

	compact := make([]byte, RecoverableSignatureSize)
	compact[0] = compactMagicOffset + sig.RecoveryID()
	copy(compact[1:], sig[:SignatureSize])

	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return out, errors.Wrapf(sigerr.ErrInvalidSignatureEncoding, "recover public key: %v", err)
	}
	copy(out[:], pub.SerializeUncompressed())
	return out, nil
}

func zeroArray(b *[32]byte) {
	for i := range b {
		b[i] = 0
	}
}
