package workflows

import (
	"context"

	"github.com/PolarWolf314/ksdecrypt/internal/utils"
)

// DiscoverOptions configures keystore discovery.
type DiscoverOptions struct {
	// Dir is the directory to search.
	Dir string

	// Pattern is the filename prefix keystore files start with.
	Pattern string
}

// Discover lists keystore files in a directory, sorted by name.
//
// Returns ErrKeystoreDirNotFound if the directory does not exist.
// Returns ErrNoKeystoreFiles if no file name starts with the pattern.
func Discover(ctx context.Context, opts DiscoverOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return utils.FindKeystoreFiles(opts.Dir, opts.Pattern)
}
