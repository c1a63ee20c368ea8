package keystore

import (
	"fmt"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
)

// ParseError reports malformed keystore content. Field is the JSON path of
// the offending value, empty when the document itself is not valid JSON.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed keystore: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("malformed keystore: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed keystore: %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == kerrors.ErrParse }

// UnsupportedKDFError reports a key derivation function this package does not
// derive. Keystore holds the raw keystore content when the error is returned
// from Decrypt, so callers can show it to the operator.
type UnsupportedKDFError struct {
	KDF      string
	Keystore []byte
}

func (e *UnsupportedKDFError) Error() string {
	return fmt.Sprintf("unsupported key derivation function %q", e.KDF)
}

func (e *UnsupportedKDFError) Is(target error) bool { return target == kerrors.ErrUnsupportedKDF }

// UnsupportedCipherError reports a cipher other than aes-128-ctr.
type UnsupportedCipherError struct {
	Cipher string
}

func (e *UnsupportedCipherError) Error() string {
	return fmt.Sprintf("unsupported cipher %q", e.Cipher)
}

func (e *UnsupportedCipherError) Is(target error) bool { return target == kerrors.ErrUnsupportedCipher }

// IntegrityError reports that the computed MAC does not match the stored one.
type IntegrityError struct{}

func (e *IntegrityError) Error() string { return kerrors.ErrIntegrity.Error() }

func (e *IntegrityError) Is(target error) bool { return target == kerrors.ErrIntegrity }

// PrimitiveUnavailableError reports a primitive that could not be constructed.
// It does not occur with a correctly built binary.
type PrimitiveUnavailableError struct {
	Primitive string
	Err       error
}

func (e *PrimitiveUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Primitive, e.Err)
}

func (e *PrimitiveUnavailableError) Unwrap() error { return e.Err }

func (e *PrimitiveUnavailableError) Is(target error) bool {
	return target == kerrors.ErrPrimitiveUnavailable
}
