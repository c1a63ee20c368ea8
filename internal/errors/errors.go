package errors

import "errors"

// Keystore errors indicate the keystore content cannot be turned into a private key.
var (
	// ErrParse indicates malformed JSON, a missing mandatory field, or a malformed field value.
	ErrParse = errors.New("malformed keystore")

	// ErrUnsupportedKDF indicates the key derivation function is not supported.
	ErrUnsupportedKDF = errors.New("unsupported key derivation function")

	// ErrUnsupportedCipher indicates the cipher is not supported.
	ErrUnsupportedCipher = errors.New("unsupported cipher")

	// ErrIntegrity indicates a MAC mismatch: wrong passphrase or corrupted file.
	ErrIntegrity = errors.New("mac mismatch: incorrect passphrase or corrupted keystore")

	// ErrPrimitiveUnavailable indicates a cryptographic primitive could not be constructed.
	ErrPrimitiveUnavailable = errors.New("cryptographic primitive unavailable")
)

// File errors indicate issues with keystore discovery or output files.
var (
	// ErrKeystoreNotFound indicates the given keystore file does not exist.
	ErrKeystoreNotFound = errors.New("keystore file not found")

	// ErrKeystoreDirNotFound indicates the keystore directory does not exist.
	ErrKeystoreDirNotFound = errors.New("keystore directory not found")

	// ErrNoKeystoreFiles indicates discovery found no keystore files.
	ErrNoKeystoreFiles = errors.New("no keystore files found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)

// Input errors indicate invalid operator input.
var (
	// ErrInvalidSelection indicates the menu selection is not a listed number.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotATerminal indicates an interactive prompt was needed but no terminal is attached.
	ErrNotATerminal = errors.New("not a terminal")
)
