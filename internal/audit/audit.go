package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/ksdecrypt/internal/utils"
)

// Outcomes recorded in Entry.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Entry represents a single audit log entry. It never contains a passphrase
// or key material.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // user@host performing the action.
	Operation string `json:"op"`   // Operation name.
	Outcome   string `json:"outcome"`

	// Optional fields depending on operation.
	File    string `json:"file,omitempty"`    // Keystore path.
	Address string `json:"address,omitempty"` // Stored address, without 0x.
	KDF     string `json:"kdf,omitempty"`
	Output  string `json:"output,omitempty"` // For save.
	Error   string `json:"error,omitempty"`  // For failures.
}

// NewEntry returns an entry for op with the current user populated.
func NewEntry(op string) Entry {
	return Entry{
		User:      utils.CurrentUser(),
		Operation: op,
	}
}

// Log appends an entry to the audit log at logPath. An empty logPath
// disables auditing.
// If logging fails, it returns silently: operations should not fail just
// because audit logging failed.
func Log(logPath string, entry Entry) {
	if logPath == "" {
		return
	}

	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(logPath string) ([]Entry, error) {
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
