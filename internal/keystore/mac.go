package keystore

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// ComputeMAC returns hex(Keccak-256(derivedKey[16:32] || ciphertext)).
//
// Ethereum tooling calls this hash "SHA3", but it is the original Keccak-256
// with the pre-standard padding, not the NIST SHA3-256 function.
func ComputeMAC(derivedKey, ciphertext []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(derivedKey[16:32])
	h.Write(ciphertext)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyMAC reports whether the MAC computed from derivedKey and ciphertext
// equals storedMAC. The comparison is case-sensitive and constant-time.
func VerifyMAC(derivedKey, ciphertext []byte, storedMAC string) bool {
	computed := ComputeMAC(derivedKey, ciphertext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedMAC)) == 1
}
