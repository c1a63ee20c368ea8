package keystore

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFPBKDF2 is the only key derivation function this package derives.
	KDFPBKDF2 = "pbkdf2"

	// KDFScrypt is recognised but rejected with UnsupportedKDFError.
	KDFScrypt = "scrypt"

	// minDerivedKeyLen covers the cipher half and the MAC half of the derived key.
	minDerivedKeyLen = 32

	// maxDerivedKeyLen bounds the allocation made for a derived key.
	maxDerivedKeyLen = 1024

	prfHMACSHA256 = "hmac-sha256"
)

// KDF derives key material from a passphrase.
type KDF interface {
	Name() string
	DeriveKey(password []byte) (*memguard.LockedBuffer, error)
}

// NewKDF selects the KDF variant for name and binds its parameters. Unknown
// names return UnsupportedKDFError. scrypt is returned without looking at
// params; its DeriveKey always fails, so check Name before deriving.
func NewKDF(name string, params json.RawMessage) (KDF, error) {
	switch name {
	case KDFPBKDF2:
		return newPBKDF2(params)
	case KDFScrypt:
		return scryptKDF{}, nil
	default:
		return nil, &UnsupportedKDFError{KDF: name}
	}
}

// DeriveKey derives the key for password using the named KDF. The caller
// owns the returned buffer and must Destroy it.
func DeriveKey(password []byte, name string, params json.RawMessage) (*memguard.LockedBuffer, error) {
	kdf, err := NewKDF(name, params)
	if err != nil {
		return nil, err
	}
	return kdf.DeriveKey(password)
}

type pbkdf2Params struct {
	Salt  *string `json:"salt"`
	C     *int    `json:"c"`
	DKLen *int    `json:"dklen"`
	PRF   string  `json:"prf"`
}

type pbkdf2KDF struct {
	salt       []byte
	iterations int
	dkLen      int
}

func newPBKDF2(params json.RawMessage) (*pbkdf2KDF, error) {
	var p pbkdf2Params
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &ParseError{Field: "crypto.kdfparams", Err: err}
	}

	if p.PRF != "" && p.PRF != prfHMACSHA256 {
		return nil, &UnsupportedKDFError{KDF: KDFPBKDF2 + "/" + p.PRF}
	}

	switch {
	case p.Salt == nil:
		return nil, &ParseError{Field: "crypto.kdfparams.salt"}
	case p.C == nil:
		return nil, &ParseError{Field: "crypto.kdfparams.c"}
	case p.DKLen == nil:
		return nil, &ParseError{Field: "crypto.kdfparams.dklen"}
	}

	if *p.C <= 0 {
		return nil, &ParseError{Field: "crypto.kdfparams.c", Err: fmt.Errorf("iteration count must be positive, got %d", *p.C)}
	}
	if *p.DKLen < minDerivedKeyLen || *p.DKLen > maxDerivedKeyLen {
		return nil, &ParseError{Field: "crypto.kdfparams.dklen", Err: fmt.Errorf("must be between %d and %d, got %d", minDerivedKeyLen, maxDerivedKeyLen, *p.DKLen)}
	}

	salt, err := decodeHex("crypto.kdfparams.salt", *p.Salt)
	if err != nil {
		return nil, err
	}

	return &pbkdf2KDF{salt: salt, iterations: *p.C, dkLen: *p.DKLen}, nil
}

func (k *pbkdf2KDF) Name() string { return KDFPBKDF2 }

// DeriveKey runs PBKDF2-HMAC-SHA256. The intermediate slice is wiped when it
// is moved into locked memory.
func (k *pbkdf2KDF) DeriveKey(password []byte) (*memguard.LockedBuffer, error) {
	dk := pbkdf2.Key(password, k.salt, k.iterations, k.dkLen, sha256.New)
	return memguard.NewBufferFromBytes(dk), nil
}

// scryptKDF stands in for scrypt keystores. Derivation is not implemented, so
// it fails before doing any work.
type scryptKDF struct{}

func (scryptKDF) Name() string { return KDFScrypt }

func (scryptKDF) DeriveKey([]byte) (*memguard.LockedBuffer, error) {
	return nil, &UnsupportedKDFError{KDF: KDFScrypt}
}
