package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/ksdecrypt/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log file.
	Path string

	// Limit is the maximum number of entries to return, most recent last.
	// 0 means no limit.
	Limit int

	// Operations filters entries by operation types (comma-separated).
	Operations string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log file yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	entries = filterByOperation(entries, opts.Operations)
	result.Entries = audit.Tail(entries, opts.Limit)

	return result, nil
}

func filterByOperation(entries []audit.Entry, operations string) []audit.Entry {
	if operations == "" {
		return entries
	}

	wanted := make(map[string]bool)
	for _, op := range strings.Split(operations, ",") {
		if op = strings.TrimSpace(op); op != "" {
			wanted[op] = true
		}
	}

	var filtered []audit.Entry
	for _, entry := range entries {
		if wanted[entry.Operation] {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
