// Package keystore decrypts Ethereum Web3 Secret Storage (version 3) keystores.
//
// This package holds all of the cryptography in ksdecrypt. It never touches
// the filesystem or the terminal: callers hand it the keystore content and a
// passphrase and get back either a Result or a structured error.
//
// # Decryption Pipeline
//
// Decrypt runs four steps in order and stops at the first failure:
//
//  1. Parse the JSON into a Record (Parse)
//  2. Derive a key from the passphrase with the keystore's KDF (DeriveKey)
//  3. Check the stored MAC against the derived key (VerifyMAC)
//  4. Decrypt the ciphertext with the first half of the derived key (DecryptCiphertext)
//
// The MAC is Keccak-256 over the second half of the derived key followed by
// the ciphertext. A mismatch means a wrong passphrase or a corrupted file, and
// the cipher step is skipped entirely.
//
// # Supported Parameters
//
// Only PBKDF2 with HMAC-SHA256 is derived. Keystores using scrypt, which is
// the default for many wallets, fail with UnsupportedKDFError carrying the
// raw keystore so the caller can point the operator at another tool. The only
// cipher is aes-128-ctr, where the IV is the whole initial counter block.
//
// # Secret Material
//
// The derived key and the recovered private key are held in memguard locked
// buffers. The derived key is destroyed before Decrypt returns; the private
// key belongs to the returned Result and is wiped by Result.Destroy.
//
// The stored address is returned as-is. It is not derived from or checked
// against the private key.
//
// Callers that persist a private key must restrict the file to its owner
// (mode 0600).
package keystore
