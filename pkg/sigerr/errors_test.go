package sigerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"key", ErrInvalidKeyEncoding, KindInvalidKeyEncoding},
		{"wrapped key", errors.Wrap(ErrInvalidKeyEncoding, "secret key"), KindInvalidKeyEncoding},
		{"signature", InvalidLength(ErrInvalidSignatureEncoding, "signature", 64, 12), KindInvalidSignatureEncoding},
		{"recoverable", ErrNonCanonicalRecoverableSignature, KindNonCanonicalRecoverableSignature},
		{"unsupported", &UnsupportedSignatureError{Tag: 7, Length: 64}, KindUnsupportedSignatureEncoding},
		{"digest", ErrInvalidDigestLength, KindInvalidDigestLength},
		{"context", ErrInvalidContext, KindInvalidContext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestUnsupportedSignatureError(t *testing.T) {
	var err error = errors.Wrap(&UnsupportedSignatureError{Tag: 1, Length: 64}, "verify")

	require.ErrorIs(t, err, ErrUnsupportedSignatureEncoding)
	require.NotErrorIs(t, err, ErrInvalidSignatureEncoding)

	var unsupported *UnsupportedSignatureError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, byte(1), unsupported.Tag)
	assert.Equal(t, 64, unsupported.Length)
	assert.Contains(t, err.Error(), "curve tag 1 with 64-byte signature")
}

func TestInvalidLength(t *testing.T) {
	err := InvalidLength(ErrInvalidKeyEncoding, "public key", 33, 10)
	require.ErrorIs(t, err, ErrInvalidKeyEncoding)
	assert.Equal(t, "public key must be 33 bytes, got 10: invalid key encoding", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid_key_encoding", KindInvalidKeyEncoding.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
