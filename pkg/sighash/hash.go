// Package sighash provides the SHA-2 digests that feed the signature schemes.
package sighash

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/minio/sha256-simd"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

const (
	Sha256Size = sha256.Size
	Sha512Size = sha512.Size
)

// Sha256Digest is a SHA-256 output.
type Sha256Digest [Sha256Size]byte

// Sha512Digest is a SHA-512 output.
type Sha512Digest [Sha512Size]byte

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) Sha256Digest {
	return sha256.Sum256(data)
}

// Sha512 returns the SHA-512 digest of data.
func Sha512(data []byte) Sha512Digest {
	return sha512.Sum512(data)
}

// Sha256FromBytes converts an externally computed digest.
func Sha256FromBytes(b []byte) (Sha256Digest, error) {
	var d Sha256Digest
	if len(b) != Sha256Size {
		return d, sigerr.InvalidLength(sigerr.ErrInvalidDigestLength, "sha256 digest", Sha256Size, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Sha512FromBytes converts an externally computed digest.
func Sha512FromBytes(b []byte) (Sha512Digest, error) {
	var d Sha512Digest
	if len(b) != Sha512Size {
		return d, sigerr.InvalidLength(sigerr.ErrInvalidDigestLength, "sha512 digest", Sha512Size, len(b))
	}
	copy(d[:], b)
	return d, nil
}

func (d Sha256Digest) Bytes() []byte  { return d[:] }
func (d Sha256Digest) String() string { return hex.EncodeToString(d[:]) }

func (d Sha512Digest) Bytes() []byte  { return d[:] }
func (d Sha512Digest) String() string { return hex.EncodeToString(d[:]) }
