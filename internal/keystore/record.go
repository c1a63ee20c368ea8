package keystore

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record is a parsed Web3 Secret Storage keystore. It is not modified after Parse.
type Record struct {
	Version int
	ID      string

	// Address is the stored address with any 0x prefix removed. It is never
	// checked against the private key.
	Address string

	Crypto CryptoParams

	raw []byte
}

// CryptoParams is the crypto (or Crypto) block of a keystore. Hex values are
// kept as stored and decoded by the component that consumes them.
type CryptoParams struct {
	Cipher     string
	CipherText string
	IV         string
	KDF        string
	KDFParams  json.RawMessage
	MAC        string
}

// Raw returns a copy of the content the record was parsed from.
func (r *Record) Raw() []byte {
	return bytes.Clone(r.raw)
}

// CipherTextBytes decodes the ciphertext.
func (r *Record) CipherTextBytes() ([]byte, error) {
	return decodeHex("crypto.ciphertext", r.Crypto.CipherText)
}

// IVBytes decodes the cipher IV.
func (r *Record) IVBytes() ([]byte, error) {
	return decodeHex("crypto.cipherparams.iv", r.Crypto.IV)
}

// Parse parses keystore content. It checks that the JSON is well formed and
// that every mandatory field is present; hex values are not validated here.
// A leading UTF-8 byte order mark is ignored.
func Parse(content []byte) (*Record, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	var top map[string]json.RawMessage
	if err := json.Unmarshal(content, &top); err != nil {
		return nil, &ParseError{Err: err}
	}

	rec := &Record{raw: bytes.Clone(content)}

	address, err := requiredString(top, "address", "address")
	if err != nil {
		return nil, err
	}
	rec.Address = strings.TrimPrefix(address, "0x")

	if v, ok := top["version"]; ok {
		if err := json.Unmarshal(v, &rec.Version); err != nil {
			return nil, &ParseError{Field: "version", Err: err}
		}
	}
	if v, ok := top["id"]; ok {
		if err := json.Unmarshal(v, &rec.ID); err != nil {
			return nil, &ParseError{Field: "id", Err: err}
		}
	}

	block, err := cryptoBlock(top)
	if err != nil {
		return nil, err
	}
	if rec.Crypto, err = parseCrypto(block); err != nil {
		return nil, err
	}

	return rec, nil
}

// cryptoBlock returns the crypto block under exactly one of "crypto" or
// "Crypto". Geth writes the capitalised form.
func cryptoBlock(top map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	lower, hasLower := top["crypto"]
	upper, hasUpper := top["Crypto"]

	var raw json.RawMessage
	switch {
	case hasLower && hasUpper:
		return nil, &ParseError{Field: "crypto", Err: errors.New("both crypto and Crypto are present")}
	case hasLower:
		raw = lower
	case hasUpper:
		raw = upper
	default:
		return nil, &ParseError{Field: "crypto"}
	}

	var block map[string]json.RawMessage
	if err := json.Unmarshal(raw, &block); err != nil || block == nil {
		if err == nil {
			err = errors.New("expected an object")
		}
		return nil, &ParseError{Field: "crypto", Err: err}
	}
	return block, nil
}

func parseCrypto(block map[string]json.RawMessage) (CryptoParams, error) {
	var (
		p   CryptoParams
		err error
	)

	if p.Cipher, err = requiredString(block, "cipher", "crypto.cipher"); err != nil {
		return p, err
	}
	if p.CipherText, err = requiredString(block, "ciphertext", "crypto.ciphertext"); err != nil {
		return p, err
	}

	cipherParams, ok := block["cipherparams"]
	if !ok {
		return p, &ParseError{Field: "crypto.cipherparams"}
	}
	var cp map[string]json.RawMessage
	if err := json.Unmarshal(cipherParams, &cp); err != nil {
		return p, &ParseError{Field: "crypto.cipherparams", Err: err}
	}
	if p.IV, err = requiredString(cp, "iv", "crypto.cipherparams.iv"); err != nil {
		return p, err
	}

	if p.KDF, err = requiredString(block, "kdf", "crypto.kdf"); err != nil {
		return p, err
	}

	kdfParams, ok := block["kdfparams"]
	if !ok || isNull(kdfParams) {
		return p, &ParseError{Field: "crypto.kdfparams"}
	}
	p.KDFParams = bytes.Clone(kdfParams)

	if p.MAC, err = requiredString(block, "mac", "crypto.mac"); err != nil {
		return p, err
	}

	return p, nil
}

// requiredString decodes m[key] as a JSON string. field names the value in errors.
func requiredString(m map[string]json.RawMessage, key, field string) (string, error) {
	raw, ok := m[key]
	if !ok || isNull(raw) {
		return "", &ParseError{Field: field}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ParseError{Field: field, Err: err}
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &ParseError{Field: field, Err: err}
	}
	return b, nil
}
