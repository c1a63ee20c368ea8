// Package audit records keystore operations in a local audit trail.
//
// Every decrypt attempt and every saved private key can be appended to a
// JSON Lines file configured with audit_log (or KSDECRYPT_AUDIT_LOG). When
// no path is configured, nothing is written.
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - user@host
//   - Operation name and outcome
//   - The keystore path, its stored address and KDF, and the error on failure
//
// Passphrases and private keys are never logged.
//
// # Usage
//
//	entry := audit.NewEntry("decrypt")
//	entry.File = path
//	entry.Outcome = audit.OutcomeSuccess
//	audit.Log(settings.AuditLog, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. The file is created with
// 0600 permissions.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display.
// Malformed entries are silently skipped to handle partial writes.
package audit
