package keystore

import (
	"encoding/hex"
	"errors"
	"io"

	"github.com/awnumar/memguard"
)

// Result is a recovered private key and the address stored next to it.
// The caller owns it and must call Destroy once the key is no longer needed.
type Result struct {
	// Address is the keystore's address as stored, without a 0x prefix.
	Address string

	key *memguard.LockedBuffer
}

// PrivateKey returns the raw private key. The slice is only valid until Destroy.
func (r *Result) PrivateKey() []byte {
	return r.key.Bytes()
}

// PrivateKeyHex returns the private key as lowercase hex. Go strings cannot be
// wiped; prefer WritePrivateKeyHex when the key is only being written out.
func (r *Result) PrivateKeyHex() string {
	return hex.EncodeToString(r.key.Bytes())
}

// WritePrivateKeyHex writes the hex-encoded private key to w through a
// scratch buffer that is wiped afterwards.
func (r *Result) WritePrivateKeyHex(w io.Writer) error {
	buf := make([]byte, hex.EncodedLen(r.key.Size()))
	defer memguard.WipeBytes(buf)

	hex.Encode(buf, r.key.Bytes())
	_, err := w.Write(buf)
	return err
}

// Destroy wipes the private key. It is safe to call more than once.
func (r *Result) Destroy() {
	r.key.Destroy()
}

// DecryptJSON parses content and decrypts it with password.
func DecryptJSON(content, password []byte) (*Result, error) {
	rec, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return Decrypt(rec, password)
}

// Decrypt recovers the private key from rec.
//
// The steps run in a fixed order and the first failure is returned: key
// derivation, MAC verification, then decryption. The cipher never runs
// unless the MAC matches. Decrypt does no I/O, and the derived key is wiped
// before it returns.
func Decrypt(rec *Record, password []byte) (*Result, error) {
	kdf, err := NewKDF(rec.Crypto.KDF, rec.Crypto.KDFParams)
	if err != nil {
		return nil, withKeystore(err, rec)
	}

	derived, err := kdf.DeriveKey(password)
	if err != nil {
		return nil, withKeystore(err, rec)
	}
	defer derived.Destroy()
	dk := derived.Bytes()

	ciphertext, err := rec.CipherTextBytes()
	if err != nil {
		return nil, err
	}

	if !VerifyMAC(dk, ciphertext, rec.Crypto.MAC) {
		return nil, &IntegrityError{}
	}

	iv, err := rec.IVBytes()
	if err != nil {
		return nil, err
	}

	plaintext, err := DecryptCiphertext(rec.Crypto.Cipher, dk[:16], iv, ciphertext)
	if err != nil {
		return nil, err
	}

	return &Result{
		Address: rec.Address,
		key:     memguard.NewBufferFromBytes(plaintext),
	}, nil
}

// withKeystore attaches the raw keystore to an UnsupportedKDFError.
func withKeystore(err error, rec *Record) error {
	var kdfErr *UnsupportedKDFError
	if errors.As(err, &kdfErr) {
		kdfErr.Keystore = rec.Raw()
	}
	return err
}
