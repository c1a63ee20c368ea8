package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// CipherAES128CTR is the only supported cipher.
const CipherAES128CTR = "aes-128-ctr"

// DecryptCiphertext decrypts ciphertext with the named cipher.
//
// For aes-128-ctr, key is the first 16 bytes of the derived key and iv is the
// full 128-bit big-endian initial counter block, which is what reference
// keystore implementations write. The plaintext has the ciphertext's length.
func DecryptCiphertext(cipherName string, key, iv, ciphertext []byte) ([]byte, error) {
	if cipherName != CipherAES128CTR {
		return nil, &UnsupportedCipherError{Cipher: cipherName}
	}

	if len(iv) != aes.BlockSize {
		return nil, &ParseError{
			Field: "crypto.cipherparams.iv",
			Err:   fmt.Errorf("must be %d bytes, got %d", aes.BlockSize, len(iv)),
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &PrimitiveUnavailableError{Primitive: "aes", Err: err}
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}
