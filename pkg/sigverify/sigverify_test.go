package sigverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

var testMessage = []byte("This is some message")

type secpSigner struct {
	sk  ecdsasig.SecretKey
	pub PublicKey
}

func newSecpSigner(t *testing.T) secpSigner {
	t.Helper()
	var sk ecdsasig.SecretKey
	sk[31] = 7
	_, uncompressed, err := ecdsasig.DerivePublicKey(sk)
	require.NoError(t, err)
	return secpSigner{sk: sk, pub: NewSecp256k1PublicKey(uncompressed.Raw())}
}

type edSigner struct {
	sk  eddsasig.SecretKey
	pub PublicKey
}

func newEdSigner() edSigner {
	var sk eddsasig.SecretKey
	for i := range sk {
		sk[i] = byte(i)
	}
	return edSigner{sk: sk, pub: NewEd25519PublicKey(eddsasig.DerivePublicKey(sk))}
}

func TestVerifyAny_Secp256k1(t *testing.T) {
	s := newSecpSigner(t)
	sig, err := ecdsasig.SignRecoverable(s.sk, testMessage)
	require.NoError(t, err)
	digest := sighash.Sha256(testMessage)

	ok, err := VerifyAny(s.pub.Bytes(), sig[:], digest[:])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyMessage(s.pub.Bytes(), sig[:], testMessage)
	require.NoError(t, err)
	assert.True(t, ok)

	other := sighash.Sha256([]byte("another message"))
	ok, err = VerifyAny(s.pub.Bytes(), sig[:], other[:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAny_Ed25519(t *testing.T) {
	e := newEdSigner()
	digest := sighash.Sha256(testMessage)
	sig := eddsasig.Sign(e.sk, digest[:])

	ok, err := VerifyAny(e.pub.Bytes(), sig[:], digest[:])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyMessage(e.pub.Bytes(), sig[:], testMessage)
	require.NoError(t, err)
	assert.True(t, ok)

	// Data is passed to Ed25519 verbatim; a signature over the raw message
	// does not verify against its digest.
	raw := eddsasig.Sign(e.sk, testMessage)
	ok, err = VerifyMessage(e.pub.Bytes(), raw[:], testMessage)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyAny(e.pub.Bytes(), raw[:], testMessage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAny_UnsupportedCombinations(t *testing.T) {
	e := newEdSigner()
	s := newSecpSigner(t)
	digest := sighash.Sha256(testMessage)

	tests := []struct {
		name   string
		key    []byte
		sigLen int
		tag    byte
	}{
		{"ed25519 key with recoverable signature", e.pub.Bytes(), 65, 0},
		{"ed25519 key with short signature", e.pub.Bytes(), 63, 0},
		{"secp256k1 key with 64-byte signature", s.pub.Bytes(), 64, 1},
		{"secp256k1 key with empty signature", s.pub.Bytes(), 0, 1},
		{"unknown tag", append([]byte{7}, e.pub.Data...), 64, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := VerifyAny(tc.key, make([]byte, tc.sigLen), digest[:])
			assert.False(t, ok)
			require.ErrorIs(t, err, sigerr.ErrUnsupportedSignatureEncoding)

			var unsupported *sigerr.UnsupportedSignatureError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tc.tag, unsupported.Tag)
			assert.Equal(t, tc.sigLen, unsupported.Length)
			assert.Equal(t, sigerr.KindUnsupportedSignatureEncoding, sigerr.KindOf(err))
		})
	}
}

func TestVerifyAny_StructuralErrors(t *testing.T) {
	s := newSecpSigner(t)
	e := newEdSigner()
	sig, err := ecdsasig.SignRecoverable(s.sk, testMessage)
	require.NoError(t, err)
	digest := sighash.Sha256(testMessage)

	_, err = VerifyAny(nil, sig[:], digest[:])
	assert.ErrorIs(t, err, sigerr.ErrInvalidKeyEncoding)

	short := s.pub.Bytes()[:64]
	_, err = VerifyAny(short, sig[:], digest[:])
	assert.ErrorIs(t, err, sigerr.ErrInvalidKeyEncoding)

	_, err = VerifyAny(e.pub.Bytes()[:20], make([]byte, 64), digest[:])
	assert.ErrorIs(t, err, sigerr.ErrInvalidKeyEncoding)

	_, err = VerifyAny(s.pub.Bytes(), sig[:], testMessage)
	assert.ErrorIs(t, err, sigerr.ErrInvalidDigestLength)

	badRecovery := sig
	badRecovery[64] = 4
	_, err = VerifyAny(s.pub.Bytes(), badRecovery[:], digest[:])
	assert.ErrorIs(t, err, sigerr.ErrInvalidSignatureEncoding)
}

func TestPublicKey_TextRoundTrip(t *testing.T) {
	for _, pk := range []PublicKey{newEdSigner().pub, newSecpSigner(t).pub} {
		text := pk.String()
		parsed, err := ParsePublicKey(text)
		require.NoError(t, err)
		assert.Equal(t, pk, parsed)

		decoded, err := DecodePublicKey(pk.Bytes())
		require.NoError(t, err)
		assert.Equal(t, pk, decoded)
	}
}

func TestParsePublicKey_Errors(t *testing.T) {
	tests := []string{
		"ed448:abc",
		"secp256k1:0OIl",
		"secp256k1:" + newEdSigner().pub.String()[len("ed25519:"):],
	}
	for _, s := range tests {
		_, err := ParsePublicKey(s)
		assert.ErrorIs(t, err, sigerr.ErrInvalidKeyEncoding, s)
	}

	e := newEdSigner()
	parsed, err := ParsePublicKey(e.pub.String()[len("ed25519:"):])
	require.NoError(t, err)
	assert.Equal(t, KeyTypeEd25519, parsed.Type)
}

func TestKeyType(t *testing.T) {
	kt, err := ParseKeyType("SECP256K1")
	require.NoError(t, err)
	assert.Equal(t, KeyTypeSecp256k1, kt)
	assert.Equal(t, "ed25519", KeyTypeEd25519.String())
	assert.Equal(t, "unknown", KeyType(9).String())

	_, err = DecodePublicKey([]byte{9, 1, 2, 3})
	assert.ErrorIs(t, err, sigerr.ErrInvalidKeyEncoding)
}
