package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/ksdecrypt/internal/audit"
	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Path is the keystore file to decrypt.
	Path string

	// Passphrase unlocks the keystore. It is only read, never retained.
	Passphrase []byte

	// AuditLog is the audit log path. Empty disables auditing.
	AuditLog string
}

// DecryptResult contains the outcome of a decrypt operation. The embedded
// keystore.Result holds the private key; call Destroy when done with it.
type DecryptResult struct {
	*keystore.Result

	// Path is the keystore file that was decrypted.
	Path string

	// KDF is the key derivation function named by the keystore.
	KDF string
}

// Decrypt reads a keystore file and recovers its private key.
//
// Returns ErrKeystoreNotFound if the file does not exist. Keystore failures
// are returned wrapped, so errors.Is works with ErrParse, ErrUnsupportedKDF,
// ErrUnsupportedCipher and ErrIntegrity, and errors.As recovers the
// structured keystore error types.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("decrypt")
	entry.File = opts.Path

	rec, err := readKeystore(opts.Path)
	if err != nil {
		logFailure(opts.AuditLog, entry, err)
		return nil, err
	}
	entry.Address = rec.Address
	entry.KDF = rec.Crypto.KDF

	result, err := keystore.Decrypt(rec, opts.Passphrase)
	if err != nil {
		logFailure(opts.AuditLog, entry, err)
		return nil, fmt.Errorf("decrypting %s: %w", opts.Path, err)
	}

	entry.Outcome = audit.OutcomeSuccess
	audit.Log(opts.AuditLog, entry)

	return &DecryptResult{
		Result: result,
		Path:   opts.Path,
		KDF:    rec.Crypto.KDF,
	}, nil
}

// readKeystore reads and parses the keystore at path.
func readKeystore(path string) (*keystore.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, kerrors.ErrKeystoreNotFound)
		}
		return nil, fmt.Errorf("reading keystore %s: %w", path, err)
	}

	rec, err := keystore.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

func logFailure(logPath string, entry audit.Entry, err error) {
	entry.Outcome = audit.OutcomeFailure
	entry.Error = err.Error()
	audit.Log(logPath, entry)
}
