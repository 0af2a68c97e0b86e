package ecdsasig

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

const (
	SignatureSize            = 64
	RecoverableSignatureSize = 65

	// recoveryIDLimit bounds the recovery id: bit 0 is the parity of R.y,
	// bit 1 is set when R.x overflowed the curve order.
	recoveryIDLimit = 4
)

// Signature is r‖s, each 32 bytes big-endian.
type Signature [SignatureSize]byte

// RecoverableSignature is r‖s‖recovery_id.
type RecoverableSignature [RecoverableSignatureSize]byte

// ParseSignature copies b into a Signature after checking its length.
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, sigerr.InvalidLength(sigerr.ErrInvalidSignatureEncoding, "secp256k1 signature", SignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ParseRecoverableSignature copies b into a RecoverableSignature after
// checking its length and recovery id.
func ParseRecoverableSignature(b []byte) (RecoverableSignature, error) {
	var sig RecoverableSignature
	if len(b) != RecoverableSignatureSize {
		return sig, sigerr.InvalidLength(sigerr.ErrInvalidSignatureEncoding, "secp256k1 recoverable signature", RecoverableSignatureSize, len(b))
	}
	if b[SignatureSize] >= recoveryIDLimit {
		return sig, errors.Wrapf(sigerr.ErrInvalidSignatureEncoding, "recovery id %d out of range", b[SignatureSize])
	}
	copy(sig[:], b)
	return sig, nil
}

// scalars decodes r and s, rejecting zero and values not below the curve
// order.
func (sig Signature) scalars() (r, s secp256k1.ModNScalar, err error) {
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return r, s, errors.Wrap(sigerr.ErrInvalidSignatureEncoding, "secp256k1 signature: r out of range")
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return r, s, errors.Wrap(sigerr.ErrInvalidSignatureEncoding, "secp256k1 signature: s out of range")
	}
	return r, s, nil
}

// IsLowS reports whether s is at most n/2. Signatures with an s that does
// not decode below n are never low-S.
func (sig Signature) IsLowS() bool {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return false
	}
	return !s.IsOverHalfOrder()
}

// Normalize returns the low-S form of sig. It returns sig unchanged when it
// is already low-S or when s does not decode.
func (sig Signature) Normalize() Signature {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:]); overflow || !s.IsOverHalfOrder() {
		return sig
	}
	s.Negate()
	out := sig
	sBytes := s.Bytes()
	copy(out[32:], sBytes[:])
	return out
}

func (sig Signature) String() string { return hex.EncodeToString(sig[:]) }

// Compact strips the recovery id.
func (sig RecoverableSignature) Compact() Signature {
	var out Signature
	copy(out[:], sig[:SignatureSize])
	return out
}

// RecoveryID returns the trailing recovery id byte.
func (sig RecoverableSignature) RecoveryID() byte {
	return sig[SignatureSize]
}

func (sig RecoverableSignature) String() string { return hex.EncodeToString(sig[:]) }

func encodeSignature(r, s *secp256k1.ModNScalar) Signature {
	var sig Signature
	rBytes, sBytes := r.Bytes(), s.Bytes()
	copy(sig[:32], rBytes[:])
	copy(sig[32:], sBytes[:])
	return sig
}
