package sigbatch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

// Request is one signature to check.
type Request struct {
	PublicKey sigverify.PublicKey
	Signature []byte
	// Data is the message, or the SHA-256 digest when Prehashed is set.
	Data      []byte
	Prehashed bool
}

// RequestParser reads verification requests from a file.
type RequestParser interface {
	ParseRequests(path string) ([]*Request, error)
}

// Fields names the JSON keys or CSV columns of a batch file. Empty names
// fall back to DefaultFields.
type Fields struct {
	PublicKey string
	Signature string
	Message   string
	Digest    string
}

// DefaultFields returns public_key, signature, message and digest.
func DefaultFields() Fields {
	return Fields{
		PublicKey: "public_key",
		Signature: "signature",
		Message:   "message",
		Digest:    "digest",
	}
}

func (f Fields) withDefaults() Fields {
	def := DefaultFields()
	if f.PublicKey == "" {
		f.PublicKey = def.PublicKey
	}
	if f.Signature == "" {
		f.Signature = def.Signature
	}
	if f.Message == "" {
		f.Message = def.Message
	}
	if f.Digest == "" {
		f.Digest = def.Digest
	}
	return f
}

// JSONParser reads a JSON array of objects.
//
// Expected format:
//
//	[
//	  {"public_key": "ed25519:<base58>", "signature": "0x...", "message": "..."},
//	  {"public_key": "secp256k1:<base58>", "signature": "0x...", "digest": "0x..."}
//	]
type JSONParser struct {
	Fields Fields
}

// ParseRequests implements RequestParser.
func (p *JSONParser) ParseRequests(path string) ([]*Request, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open batch file")
	}
	defer file.Close()

	var items []map[string]string
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	fields := p.Fields.withDefaults()
	requests := make([]*Request, 0, len(items))
	for i, item := range items {
		digest, hasDigest := item[fields.Digest]
		message, hasMessage := item[fields.Message]
		req, err := newRequest(item[fields.PublicKey], item[fields.Signature],
			message, hasMessage, digest, hasDigest && digest != "")
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// CSVParser reads a CSV file with a header row.
type CSVParser struct {
	Fields Fields
}

// ParseRequests implements RequestParser.
func (p *CSVParser) ParseRequests(path string) ([]*Request, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open batch file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	fields := p.Fields.withDefaults()
	pubIdx, sigIdx, msgIdx, digestIdx := -1, -1, -1, -1
	for i, col := range header {
		switch col {
		case fields.PublicKey:
			pubIdx = i
		case fields.Signature:
			sigIdx = i
		case fields.Message:
			msgIdx = i
		case fields.Digest:
			digestIdx = i
		}
	}
	if pubIdx == -1 || sigIdx == -1 {
		return nil, errors.Errorf("missing required columns: %s or %s", fields.PublicKey, fields.Signature)
	}
	if msgIdx == -1 && digestIdx == -1 {
		return nil, errors.Errorf("missing columns: need %s or %s", fields.Message, fields.Digest)
	}

	var requests []*Request
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}

		column := func(idx int) (string, bool) {
			if idx < 0 || idx >= len(record) {
				return "", false
			}
			return record[idx], true
		}
		pub, _ := column(pubIdx)
		sig, _ := column(sigIdx)
		message, hasMessage := column(msgIdx)
		digest, _ := column(digestIdx)

		req, err := newRequest(pub, sig, message, hasMessage, digest, digest != "")
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// newRequest builds a Request from text fields. A non-empty digest takes
// precedence over the message.
func newRequest(pub, sig, message string, hasMessage bool, digest string, hasDigest bool) (*Request, error) {
	if pub == "" {
		return nil, errors.New("missing public key")
	}
	key, err := sigverify.ParsePublicKey(pub)
	if err != nil {
		return nil, err
	}
	if sig == "" {
		return nil, errors.New("missing signature")
	}
	sigBytes, err := encoding.DecodeBytes(sig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse signature")
	}

	req := &Request{PublicKey: key, Signature: sigBytes}
	switch {
	case hasDigest:
		req.Data, err = encoding.DecodeBytes(digest)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse digest")
		}
		req.Prehashed = true
	case hasMessage:
		req.Data = []byte(message)
	default:
		return nil, errors.New("missing message or digest")
	}
	return req, nil
}
