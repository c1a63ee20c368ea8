package workflows

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
)

// KeystoreInfo describes a keystore file without decrypting it.
type KeystoreInfo struct {
	Path      string          `json:"path"`
	Version   int             `json:"version,omitempty"`
	ID        string          `json:"id,omitempty"`
	IDValid   bool            `json:"id_valid"`
	Address   string          `json:"address,omitempty"`
	KDF       string          `json:"kdf,omitempty"`
	KDFParams json.RawMessage `json:"kdfparams,omitempty"`
	Cipher    string          `json:"cipher,omitempty"`

	// Supported is true when the KDF and cipher can be decrypted here.
	Supported bool `json:"supported"`

	// Reason explains why the keystore is unsupported or unreadable.
	Reason string `json:"reason,omitempty"`
}

// Inspect reads a keystore's metadata. It needs no passphrase and never
// derives a key.
//
// A file that cannot be read returns an error. A file that can be read but
// not parsed is returned with Supported false and the parse error in Reason.
func Inspect(ctx context.Context, path string) (*KeystoreInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := readKeystore(path)
	if err != nil {
		var parseErr *keystore.ParseError
		if errors.As(err, &parseErr) {
			return &KeystoreInfo{Path: path, Reason: parseErr.Error()}, nil
		}
		return nil, err
	}

	info := &KeystoreInfo{
		Path:      path,
		Version:   rec.Version,
		ID:        rec.ID,
		Address:   rec.Address,
		KDF:       rec.Crypto.KDF,
		KDFParams: rec.Crypto.KDFParams,
		Cipher:    rec.Crypto.Cipher,
	}

	if _, err := uuid.Parse(rec.ID); err == nil {
		info.IDValid = true
	}

	info.Supported, info.Reason = supported(rec)
	return info, nil
}

// List inspects every keystore file in a directory.
func List(ctx context.Context, opts DiscoverOptions) ([]*KeystoreInfo, error) {
	paths, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	infos := make([]*KeystoreInfo, 0, len(paths))
	for _, path := range paths {
		info, err := Inspect(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			info = &KeystoreInfo{Path: path, Reason: err.Error()}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// supported checks the KDF and cipher without touching the passphrase.
func supported(rec *keystore.Record) (bool, string) {
	kdf, err := keystore.NewKDF(rec.Crypto.KDF, rec.Crypto.KDFParams)
	if err != nil {
		return false, err.Error()
	}
	if kdf.Name() != keystore.KDFPBKDF2 {
		return false, (&keystore.UnsupportedKDFError{KDF: kdf.Name()}).Error()
	}
	if rec.Crypto.Cipher != keystore.CipherAES128CTR {
		return false, (&keystore.UnsupportedCipherError{Cipher: rec.Crypto.Cipher}).Error()
	}
	return true, ""
}
