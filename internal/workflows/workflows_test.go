package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/ksdecrypt/internal/keystore/keystoretest"
)

// writeKeystore seals privateKey under password and writes it to dir/name.
func writeKeystore(t *testing.T, dir, name string, privateKey, password []byte, opts keystoretest.Options) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, keystoretest.Seal(t, privateKey, password, opts), 0600); err != nil {
		t.Fatalf("Failed to write keystore: %v", err)
	}
	return path
}
