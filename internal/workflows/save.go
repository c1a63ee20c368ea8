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

// privateKeyFileMode restricts saved private keys to their owner.
const privateKeyFileMode = 0600

// SaveOptions configures the save workflow.
type SaveOptions struct {
	// Result holds the private key to save.
	Result *keystore.Result

	// Path is the output file.
	Path string

	// Force overwrites an existing file.
	Force bool

	// Source is the keystore the key came from, for the audit log.
	Source string

	// AuditLog is the audit log path. Empty disables auditing.
	AuditLog string
}

// SavePrivateKey writes the private key as 64 lowercase hex characters with
// no trailing newline. The file is created with mode 0600 and chmod'd to
// 0600 afterwards, so an overwritten file also ends up owner-only.
//
// Returns ErrOutputExists if the file exists and Force is not set.
func SavePrivateKey(ctx context.Context, opts SaveOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(opts.Path, flags, privateKeyFileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", opts.Path, kerrors.ErrOutputExists)
		}
		return fmt.Errorf("creating %s: %w", opts.Path, err)
	}

	if err := writeKey(f, opts.Result); err != nil {
		_ = os.Remove(opts.Path)
		return fmt.Errorf("writing %s: %w", opts.Path, err)
	}

	entry := audit.NewEntry("save")
	entry.File = opts.Source
	entry.Address = opts.Result.Address
	entry.Output = opts.Path
	entry.Outcome = audit.OutcomeSuccess
	audit.Log(opts.AuditLog, entry)

	return nil
}

func writeKey(f *os.File, result *keystore.Result) error {
	if err := f.Chmod(privateKeyFileMode); err != nil {
		f.Close()
		return err
	}
	if err := result.WritePrivateKeyHex(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
