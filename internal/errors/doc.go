// Package errors provides typed error values for ksdecrypt.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Keystore errors: the file cannot be decrypted (ErrParse, ErrUnsupportedKDF,
//     ErrUnsupportedCipher, ErrIntegrity, ErrPrimitiveUnavailable)
//   - File errors: keystore discovery or output issues (ErrKeystoreNotFound,
//     ErrKeystoreDirNotFound, ErrNoKeystoreFiles, ErrOutputExists)
//   - Input errors: operator input issues (ErrInvalidSelection, ErrNotATerminal)
//
// The keystore package returns structured error types carrying details such
// as the offending field or KDF name. Each of those types reports itself as
// the matching sentinel here, so both styles work:
//
//	if errors.Is(err, kerrors.ErrIntegrity) {
//	    // wrong passphrase or corrupted file
//	}
//
//	var kdfErr *keystore.UnsupportedKDFError
//	if errors.As(err, &kdfErr) {
//	    fmt.Println(string(kdfErr.Keystore))
//	}
package errors
