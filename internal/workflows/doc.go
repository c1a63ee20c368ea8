// Package workflows provides file-level orchestration for ksdecrypt commands.
//
// The keystore package only works on bytes. Workflows add everything around
// it: reading keystore files, discovering them in a directory, saving
// recovered keys with owner-only permissions, decrypting many files in
// parallel, and recording audit entries. They are independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Prompts for the passphrase and menu selection
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Decrypt: decrypts one keystore file
//   - DecryptBatch: decrypts many files with one passphrase, in parallel
//   - Discover: lists keystore files in a directory
//   - Inspect, List: report keystore metadata without a passphrase
//   - SavePrivateKey: writes a recovered key to a 0600 file
//   - Log: reads the audit log
//
// # Error Handling
//
// Workflows wrap errors with the file involved and keep the chain intact,
// so the CLI layer can use errors.Is with the sentinels in internal/errors
// and errors.As with the keystore package's error types:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrIntegrity) {
//	    // wrong passphrase
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancellation stops DecryptBatch from starting further files.
package workflows
