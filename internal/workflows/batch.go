package workflows

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchOptions configures the batch decrypt workflow.
type BatchOptions struct {
	// Paths are the keystore files to decrypt, all with the same passphrase.
	Paths []string

	// Passphrase unlocks every keystore. It is shared read-only between workers.
	Passphrase []byte

	// Workers bounds how many files are decrypted at once. Zero means one per CPU.
	Workers int

	// AuditLog is the audit log path. Empty disables auditing.
	AuditLog string
}

// BatchItem is the outcome for one file. Exactly one of Result and Err is set.
type BatchItem struct {
	Path   string
	Result *DecryptResult
	Err    error
}

// BatchResult contains one item per requested path, in request order.
type BatchResult struct {
	Items []BatchItem
}

// Succeeded returns the number of files that decrypted.
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, item := range r.Items {
		if item.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that did not decrypt.
func (r *BatchResult) Failed() int {
	return len(r.Items) - r.Succeeded()
}

// Destroy wipes every recovered private key.
func (r *BatchResult) Destroy() {
	for _, item := range r.Items {
		if item.Result != nil {
			item.Result.Destroy()
		}
	}
}

// DecryptBatch decrypts many keystore files in parallel.
//
// A failure on one file does not stop the others; it is recorded in that
// file's BatchItem. If ctx is cancelled, files not yet started are marked
// with the context error and DecryptBatch returns ctx.Err() alongside the
// partial result.
func DecryptBatch(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	result := &BatchResult{Items: make([]BatchItem, len(opts.Paths))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range opts.Paths {
		result.Items[i].Path = path

		if err := gctx.Err(); err != nil {
			result.Items[i].Err = err
			continue
		}

		g.Go(func() error {
			res, err := Decrypt(gctx, DecryptOptions{
				Path:       path,
				Passphrase: opts.Passphrase,
				AuditLog:   opts.AuditLog,
			})
			result.Items[i].Result = res
			result.Items[i].Err = err
			return nil
		})
	}

	_ = g.Wait()

	return result, ctx.Err()
}
