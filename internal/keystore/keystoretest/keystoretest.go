// Package keystoretest builds keystore fixtures for tests.
package keystoretest

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

// Options controls the generated keystore. Zero values give a valid
// pbkdf2/aes-128-ctr keystore with a small iteration count.
type Options struct {
	Address    string
	Iterations int
	// KDF overrides the kdf name written to the file. Anything other than
	// pbkdf2 is written with scrypt-style parameters.
	KDF    string
	Cipher string
	// CryptoKey is the JSON key of the crypto block, "crypto" or "Crypto".
	CryptoKey string
}

// DefaultAddress is used when Options.Address is empty.
const DefaultAddress = "008aeeda4d805471df9b2a5b0f38a0c3bcba786b"

// Seal encrypts privateKey under password and returns the keystore JSON.
func Seal(t testing.TB, privateKey, password []byte, opts Options) []byte {
	t.Helper()

	if opts.Address == "" {
		opts.Address = DefaultAddress
	}
	if opts.Iterations == 0 {
		opts.Iterations = 2
	}
	if opts.KDF == "" {
		opts.KDF = keystore.KDFPBKDF2
	}
	if opts.Cipher == "" {
		opts.Cipher = keystore.CipherAES128CTR
	}
	if opts.CryptoKey == "" {
		opts.CryptoKey = "crypto"
	}

	salt := randomBytes(t, 32)
	iv := randomBytes(t, 16)

	dk := pbkdf2.Key(password, salt, opts.Iterations, 32, sha256.New)

	// CTR is its own inverse.
	ciphertext, err := keystore.DecryptCiphertext(keystore.CipherAES128CTR, dk[:16], iv, privateKey)
	if err != nil {
		t.Fatalf("Failed to encrypt fixture: %v", err)
	}

	var kdfParams map[string]any
	if opts.KDF == keystore.KDFPBKDF2 {
		kdfParams = map[string]any{
			"c":     opts.Iterations,
			"dklen": 32,
			"prf":   "hmac-sha256",
			"salt":  hex.EncodeToString(salt),
		}
	} else {
		kdfParams = map[string]any{
			"n":     262144,
			"r":     8,
			"p":     1,
			"dklen": 32,
			"salt":  hex.EncodeToString(salt),
		}
	}

	doc := map[string]any{
		"address": opts.Address,
		"id":      uuid.NewString(),
		"version": 3,
		opts.CryptoKey: map[string]any{
			"cipher":       opts.Cipher,
			"ciphertext":   hex.EncodeToString(ciphertext),
			"cipherparams": map[string]any{"iv": hex.EncodeToString(iv)},
			"kdf":          opts.KDF,
			"kdfparams":    kdfParams,
			"mac":          keystore.ComputeMAC(dk, ciphertext),
		},
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	return out
}

// PrivateKey returns a random 32-byte private key.
func PrivateKey(t testing.TB) []byte {
	t.Helper()
	return randomBytes(t, 32)
}

func randomBytes(t testing.TB, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("Failed to read random bytes: %v", err)
	}
	return b
}
