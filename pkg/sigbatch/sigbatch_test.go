package sigbatch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

type fixture struct {
	edKey   sigverify.PublicKey
	edSK    eddsasig.SecretKey
	secpKey sigverify.PublicKey
	secpSK  ecdsasig.SecretKey
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	var f fixture
	for i := range f.edSK {
		f.edSK[i] = byte(i + 1)
	}
	f.edKey = sigverify.NewEd25519PublicKey(eddsasig.DerivePublicKey(f.edSK))

	f.secpSK[31] = 42
	_, uncompressed, err := ecdsasig.DerivePublicKey(f.secpSK)
	require.NoError(t, err)
	f.secpKey = sigverify.NewSecp256k1PublicKey(uncompressed.Raw())
	return f
}

// edSign produces a chain-native Ed25519 signature: Ed25519 over sha256(msg).
func (f fixture) edSign(msg string) []byte {
	digest := sighash.Sha256([]byte(msg))
	sig := eddsasig.Sign(f.edSK, digest[:])
	return sig[:]
}

func (f fixture) secpSign(t *testing.T, msg string) []byte {
	t.Helper()
	sig, err := ecdsasig.SignRecoverable(f.secpSK, []byte(msg))
	require.NoError(t, err)
	return sig[:]
}

func (f fixture) requests(t *testing.T) []*Request {
	digest := sighash.Sha256([]byte("prehashed payload"))
	return []*Request{
		{PublicKey: f.edKey, Signature: f.edSign("hello"), Data: []byte("hello")},
		{PublicKey: f.secpKey, Signature: f.secpSign(t, "hello"), Data: []byte("hello")},
		{PublicKey: f.secpKey, Signature: f.secpSign(t, "prehashed payload"), Data: digest[:], Prehashed: true},
		{PublicKey: f.edKey, Signature: f.edSign("hello"), Data: []byte("goodbye")},
		{PublicKey: f.secpKey, Signature: make([]byte, 64), Data: []byte("hello")},
	}
}

func TestVerifyRequests(t *testing.T) {
	f := newFixture(t)
	report, err := NewVerifier().WithWorkers(2).VerifyRequests(context.Background(), f.requests(t))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.AllValid())

	require.Len(t, report.Results, 5)
	for i, res := range report.Results {
		assert.Equal(t, i, res.Index)
	}
	assert.False(t, report.Results[3].Valid)
	assert.NoError(t, report.Results[3].Err)
	assert.ErrorIs(t, report.Results[4].Err, sigerr.ErrUnsupportedSignatureEncoding)
}

func TestVerifyRequests_Empty(t *testing.T) {
	report, err := NewVerifier().VerifyRequests(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.True(t, report.AllValid())
}

func TestVerifyRequests_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVerifier().VerifyRequests(ctx, f.requests(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestVerifyRequests_Metrics(t *testing.T) {
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewVerifier().WithMetrics(m).VerifyRequests(context.Background(), f.requests(t))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("ed25519", outcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("ed25519", outcomeInvalid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Verifications.WithLabelValues("secp256k1", outcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues("secp256k1", outcomeError)))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVerifyFile_JSON(t *testing.T) {
	f := newFixture(t)
	digest := sighash.Sha256([]byte("prehashed payload"))
	items := []map[string]string{
		{"public_key": f.edKey.String(), "signature": encoding.EncodeHex(f.edSign("hello")), "message": "hello"},
		{"public_key": f.secpKey.String(), "signature": encoding.EncodeHex(f.secpSign(t, "prehashed payload")), "digest": encoding.EncodeHex(digest[:])},
		{"public_key": f.secpKey.String(), "signature": encoding.EncodeHex(f.secpSign(t, "hello")), "message": "tampered"},
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	path := writeFile(t, "batch.json", string(data))

	report, err := NewVerifier().VerifyFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 0, report.Failed)
}

func TestVerifyFile_CSVCustomColumns(t *testing.T) {
	f := newFixture(t)
	var b strings.Builder
	b.WriteString("key,sig,payload\n")
	fmt.Fprintf(&b, "%s,%s,hello\n", f.edKey, encoding.EncodeHex(f.edSign("hello")))
	fmt.Fprintf(&b, "%s,%s,hello\n", f.secpKey, encoding.EncodeHex(f.secpSign(t, "hello")))
	path := writeFile(t, "batch.csv", b.String())

	parser := &CSVParser{Fields: Fields{PublicKey: "key", Signature: "sig", Message: "payload"}}
	report, err := NewVerifier().WithParser(parser).VerifyFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Valid)
	assert.True(t, report.AllValid())
}

func TestParsers_Errors(t *testing.T) {
	f := newFixture(t)
	sig := encoding.EncodeHex(f.edSign("hello"))

	tests := []struct {
		name   string
		parser RequestParser
		file   string
		body   string
	}{
		{"json not an array", &JSONParser{}, "a.json", `{"public_key": "x"}`},
		{"json missing signature", &JSONParser{}, "b.json", `[{"public_key": "` + f.edKey.String() + `", "message": "m"}]`},
		{"json missing data", &JSONParser{}, "c.json", `[{"public_key": "` + f.edKey.String() + `", "signature": "` + sig + `"}]`},
		{"json bad key", &JSONParser{}, "d.json", `[{"public_key": "ed448:abc", "signature": "` + sig + `", "message": "m"}]`},
		{"csv missing columns", &CSVParser{}, "e.csv", "public_key,message\nx,y\n"},
		{"csv bad signature", &CSVParser{}, "f.csv", "public_key,signature,message\n" + f.edKey.String() + ",0xzz,m\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.parser.ParseRequests(writeFile(t, tc.file, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := (&JSONParser{}).ParseRequests(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
