package keystore_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore/keystoretest"
)

const (
	wikipagePassword   = "testpassword"
	wikipagePrivateKey = "7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d"
	wikipageAddress    = "008aeeda4d805471df9b2a5b0f38a0c3bcba786b"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read testdata %s: %v", name, err)
	}
	return data
}

func TestDecrypt_WikipageVector(t *testing.T) {
	content := readTestdata(t, "wikipage_pbkdf2.json")

	result, err := keystore.DecryptJSON(content, []byte(wikipagePassword))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer result.Destroy()

	if got := result.PrivateKeyHex(); got != wikipagePrivateKey {
		t.Errorf("Expected private key %s, got: %s", wikipagePrivateKey, got)
	}
	if result.Address != wikipageAddress {
		t.Errorf("Expected address %s, got: %s", wikipageAddress, result.Address)
	}
}

func TestDecrypt_WikipageVectorWrongPassword(t *testing.T) {
	content := readTestdata(t, "wikipage_pbkdf2.json")

	result, err := keystore.DecryptJSON(content, []byte("wrongpassword"))
	if err == nil {
		result.Destroy()
		t.Fatal("Expected an error for the wrong password")
	}
	if !errors.Is(err, kerrors.ErrIntegrity) {
		t.Errorf("Expected ErrIntegrity, got: %v", err)
	}
	var integrityErr *keystore.IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Errorf("Expected *IntegrityError, got: %T", err)
	}
}

func TestDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		cryptoKey string
	}{
		{"lowercase crypto block", "crypto"},
		{"geth Crypto block", "Crypto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			priv := keystoretest.PrivateKey(t)
			password := []byte("correct horse battery staple")
			content := keystoretest.Seal(t, priv, password, keystoretest.Options{CryptoKey: tt.cryptoKey})

			result, err := keystore.DecryptJSON(content, password)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			defer result.Destroy()

			if !bytes.Equal(result.PrivateKey(), priv) {
				t.Errorf("Expected private key %x, got: %x", priv, result.PrivateKey())
			}
			if len(result.PrivateKeyHex()) != 64 {
				t.Errorf("Expected 64 hex characters, got: %d", len(result.PrivateKeyHex()))
			}
		})
	}
}

func TestDecrypt_WrongPasswordNeverReturnsKey(t *testing.T) {
	priv := keystoretest.PrivateKey(t)
	content := keystoretest.Seal(t, priv, []byte("right"), keystoretest.Options{})

	for _, password := range []string{"", "wrong", "Right", "right "} {
		result, err := keystore.DecryptJSON(content, []byte(password))
		if err == nil {
			result.Destroy()
			t.Fatalf("Expected error for password %q", password)
		}
		if !errors.Is(err, kerrors.ErrIntegrity) {
			t.Errorf("Expected ErrIntegrity for password %q, got: %v", password, err)
		}
	}
}

func TestDecrypt_EmptyPassword(t *testing.T) {
	priv := keystoretest.PrivateKey(t)
	content := keystoretest.Seal(t, priv, nil, keystoretest.Options{})

	result, err := keystore.DecryptJSON(content, []byte{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer result.Destroy()

	if !bytes.Equal(result.PrivateKey(), priv) {
		t.Errorf("Expected private key %x, got: %x", priv, result.PrivateKey())
	}
}

func TestDecrypt_AddressIsNotValidated(t *testing.T) {
	priv := keystoretest.PrivateKey(t)
	password := []byte("pw")
	address := "definitely not an address"
	content := keystoretest.Seal(t, priv, password, keystoretest.Options{Address: address})

	result, err := keystore.DecryptJSON(content, password)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer result.Destroy()

	if result.Address != address {
		t.Errorf("Expected address %q to be echoed, got: %q", address, result.Address)
	}
}

func TestDecrypt_Scrypt(t *testing.T) {
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{KDF: keystore.KDFScrypt})

	_, err := keystore.DecryptJSON(content, []byte("pw"))
	if !errors.Is(err, kerrors.ErrUnsupportedKDF) {
		t.Fatalf("Expected ErrUnsupportedKDF, got: %v", err)
	}

	var kdfErr *keystore.UnsupportedKDFError
	if !errors.As(err, &kdfErr) {
		t.Fatalf("Expected *UnsupportedKDFError, got: %T", err)
	}
	if kdfErr.KDF != keystore.KDFScrypt {
		t.Errorf("Expected KDF %q, got: %q", keystore.KDFScrypt, kdfErr.KDF)
	}
	if !bytes.Equal(kdfErr.Keystore, content) {
		t.Errorf("Expected the raw keystore to be attached to the error")
	}
}

func TestDecrypt_ScryptWinsOverMalformedFields(t *testing.T) {
	content := []byte(`{
		"address": "00",
		"crypto": {
			"cipher": "aes-128-ctr",
			"ciphertext": "zz",
			"cipherparams": {"iv": "zz"},
			"kdf": "scrypt",
			"kdfparams": {"n": "not a number"},
			"mac": "00"
		}
	}`)

	_, err := keystore.DecryptJSON(content, []byte("pw"))
	if !errors.Is(err, kerrors.ErrUnsupportedKDF) {
		t.Errorf("Expected ErrUnsupportedKDF, got: %v", err)
	}
}

func TestDecrypt_UnknownKDF(t *testing.T) {
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{KDF: "argon2id"})

	_, err := keystore.DecryptJSON(content, []byte("pw"))
	var kdfErr *keystore.UnsupportedKDFError
	if !errors.As(err, &kdfErr) {
		t.Fatalf("Expected *UnsupportedKDFError, got: %v", err)
	}
	if kdfErr.KDF != "argon2id" {
		t.Errorf("Expected KDF %q, got: %q", "argon2id", kdfErr.KDF)
	}
}

func TestDecrypt_UnsupportedCipher(t *testing.T) {
	password := []byte("pw")
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), password, keystoretest.Options{Cipher: "aes-128-cbc"})

	_, err := keystore.DecryptJSON(content, password)
	if !errors.Is(err, kerrors.ErrUnsupportedCipher) {
		t.Fatalf("Expected ErrUnsupportedCipher, got: %v", err)
	}
	if !strings.Contains(err.Error(), "aes-128-cbc") {
		t.Errorf("Expected cipher name in error, got: %v", err)
	}
}

func TestDecrypt_UnsupportedCipherWithWrongPasswordIsIntegrityError(t *testing.T) {
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{Cipher: "aes-128-cbc"})

	_, err := keystore.DecryptJSON(content, []byte("other"))
	if !errors.Is(err, kerrors.ErrIntegrity) {
		t.Errorf("Expected ErrIntegrity before the cipher step, got: %v", err)
	}
}

func TestDecrypt_MissingCryptoBlock(t *testing.T) {
	content := []byte(`{"address": "008aeeda4d805471df9b2a5b0f38a0c3bcba786b", "version": 3}`)

	_, err := keystore.DecryptJSON(content, []byte("pw"))
	if !errors.Is(err, kerrors.ErrParse) {
		t.Errorf("Expected ErrParse, got: %v", err)
	}
}

func TestDecrypt_OversizedDKLenIsRejected(t *testing.T) {
	content := []byte(`{
		"address": "00",
		"crypto": {
			"cipher": "aes-128-ctr",
			"ciphertext": "00",
			"cipherparams": {"iv": "00000000000000000000000000000000"},
			"kdf": "pbkdf2",
			"kdfparams": {"c": 1, "dklen": 4611686018427387904, "prf": "hmac-sha256", "salt": "00"},
			"mac": "00"
		}
	}`)

	_, err := keystore.DecryptJSON(content, []byte("pw"))
	var parseErr *keystore.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got: %v", err)
	}
	if parseErr.Field != "crypto.kdfparams.dklen" {
		t.Errorf("Expected field crypto.kdfparams.dklen, got: %s", parseErr.Field)
	}
}

func TestDecrypt_MalformedCiphertextHex(t *testing.T) {
	password := []byte("pw")
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), password, keystoretest.Options{})
	rec, err := keystore.Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	rec.Crypto.CipherText = "not hex"

	_, err = keystore.Decrypt(rec, password)
	var parseErr *keystore.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got: %v", err)
	}
	if parseErr.Field != "crypto.ciphertext" {
		t.Errorf("Expected field crypto.ciphertext, got: %s", parseErr.Field)
	}
}

func TestDecrypt_IsDeterministic(t *testing.T) {
	password := []byte("pw")
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), password, keystoretest.Options{})

	first, err := keystore.DecryptJSON(content, password)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer first.Destroy()

	second, err := keystore.DecryptJSON(content, password)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer second.Destroy()

	if first.PrivateKeyHex() != second.PrivateKeyHex() {
		t.Errorf("Expected identical results, got %s and %s", first.PrivateKeyHex(), second.PrivateKeyHex())
	}
}

func TestResult_WritePrivateKeyHex(t *testing.T) {
	priv := keystoretest.PrivateKey(t)
	password := []byte("pw")
	content := keystoretest.Seal(t, priv, password, keystoretest.Options{})

	result, err := keystore.DecryptJSON(content, password)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer result.Destroy()

	var buf bytes.Buffer
	if err := result.WritePrivateKeyHex(&buf); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if buf.String() != hex.EncodeToString(priv) {
		t.Errorf("Expected %x, got: %s", priv, buf.String())
	}
}

func TestResult_DestroyTwice(t *testing.T) {
	password := []byte("pw")
	content := keystoretest.Seal(t, keystoretest.PrivateKey(t), password, keystoretest.Options{})

	result, err := keystore.DecryptJSON(content, password)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	result.Destroy()
	result.Destroy()
}
