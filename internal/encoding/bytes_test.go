package encoding

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"0x0102ff", []byte{1, 2, 0xff}},
		{"0X0102FF", []byte{1, 2, 0xff}},
		{"0102ff", []byte{1, 2, 0xff}},
		{"  0xab ", []byte{0xab}},
		{"", []byte{}},
	}
	for _, tc := range tests {
		got, err := DecodeHex(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := DecodeHex("0xabc")
	assert.Error(t, err)
	_, err = DecodeHex("zz")
	assert.Error(t, err)
}

func TestDecodeBytes(t *testing.T) {
	raw := []byte("chainsig")
	got, err := DecodeBytes(base58.Encode(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBytes(EncodeHex(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBytes("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = DecodeBytes("0OIl")
	assert.Error(t, err)
}
