// Package sigerr defines the error taxonomy shared by the chainsig packages.
//
// Structural problems with inputs (bad key or signature encodings, unknown
// curve/signature combinations) are reported as errors that match one of the
// sentinels below with errors.Is. A signature that is well formed but does not
// verify is never an error: verification functions return false instead.
package sigerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidKeyEncoding indicates a key of the wrong length, an out of
	// range secret scalar or a public key that is not a point on the curve.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrInvalidSignatureEncoding indicates a signature of the wrong length
	// or with structurally invalid components.
	ErrInvalidSignatureEncoding = errors.New("invalid signature encoding")

	// ErrNonCanonicalRecoverableSignature indicates that the signer produced
	// a recoverable signature whose s is not in low-S form. This is an
	// internal consistency failure, not a verification result.
	ErrNonCanonicalRecoverableSignature = errors.New("non-canonical recoverable signature")

	// ErrUnsupportedSignatureEncoding indicates that a curve tag and
	// signature length do not map to a known scheme.
	ErrUnsupportedSignatureEncoding = errors.New("unsupported signature encoding")

	// ErrInvalidDigestLength indicates a pre-hashed input of the wrong size.
	ErrInvalidDigestLength = errors.New("invalid digest length")

	// ErrInvalidContext indicates an Ed25519ph context that RFC 8032 does
	// not allow (longer than 255 bytes).
	ErrInvalidContext = errors.New("invalid signing context")
)

// Kind classifies an error returned by this module.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidKeyEncoding
	KindInvalidSignatureEncoding
	KindNonCanonicalRecoverableSignature
	KindUnsupportedSignatureEncoding
	KindInvalidDigestLength
	KindInvalidContext
)

var kindNames = map[Kind]string{
	KindUnknown:                          "unknown",
	KindInvalidKeyEncoding:               "invalid_key_encoding",
	KindInvalidSignatureEncoding:         "invalid_signature_encoding",
	KindNonCanonicalRecoverableSignature: "non_canonical_recoverable_signature",
	KindUnsupportedSignatureEncoding:     "unsupported_signature_encoding",
	KindInvalidDigestLength:              "invalid_digest_length",
	KindInvalidContext:                   "invalid_context",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindOf returns the Kind of err, looking through any wrapping.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidKeyEncoding):
		return KindInvalidKeyEncoding
	case errors.Is(err, ErrInvalidSignatureEncoding):
		return KindInvalidSignatureEncoding
	case errors.Is(err, ErrNonCanonicalRecoverableSignature):
		return KindNonCanonicalRecoverableSignature
	case errors.Is(err, ErrUnsupportedSignatureEncoding):
		return KindUnsupportedSignatureEncoding
	case errors.Is(err, ErrInvalidDigestLength):
		return KindInvalidDigestLength
	case errors.Is(err, ErrInvalidContext):
		return KindInvalidContext
	default:
		return KindUnknown
	}
}

// UnsupportedSignatureError is returned by the dispatcher when the curve tag
// of a public key and the length of a signature select no known scheme.
type UnsupportedSignatureError struct {
	Tag    byte
	Length int
}

func (e *UnsupportedSignatureError) Error() string {
	return fmt.Sprintf("%s: curve tag %d with %d-byte signature", ErrUnsupportedSignatureEncoding, e.Tag, e.Length)
}

// Is reports whether target is ErrUnsupportedSignatureEncoding.
func (e *UnsupportedSignatureError) Is(target error) bool {
	return target == ErrUnsupportedSignatureEncoding
}

// InvalidLength wraps sentinel with the expected and actual sizes of an input.
func InvalidLength(sentinel error, what string, want, got int) error {
	return errors.Wrapf(sentinel, "%s must be %d bytes, got %d", what, want, got)
}
