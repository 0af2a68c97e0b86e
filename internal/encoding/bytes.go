// Package encoding decodes the textual byte encodings accepted by the batch
// files and the command line.
package encoding

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// DecodeHex decodes hex with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex %q", s)
	}
	return b, nil
}

// DecodeBytes decodes 0x-prefixed hex, or base58 otherwise.
func DecodeBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return DecodeHex(s)
	}
	if s == "" {
		return []byte{}, nil
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base58 %q", s)
	}
	return b, nil
}

// EncodeHex returns b as 0x-prefixed lower-case hex.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
