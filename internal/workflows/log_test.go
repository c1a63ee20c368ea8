package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/ksdecrypt/internal/audit"
)

func TestLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	for _, op := range []string{"decrypt", "save", "decrypt", "decrypt"} {
		audit.Log(logPath, audit.Entry{Operation: op, Outcome: audit.OutcomeSuccess})
	}

	tests := []struct {
		name       string
		opts       LogOptions
		wantCount  int
		wantTotal  int
		wantLastOp string
	}{
		{"all", LogOptions{Path: logPath}, 4, 4, "decrypt"},
		{"limit", LogOptions{Path: logPath, Limit: 2}, 2, 4, "decrypt"},
		{"operation filter", LogOptions{Path: logPath, Operations: "save"}, 1, 4, "save"},
		{"filter and limit", LogOptions{Path: logPath, Operations: "decrypt, save", Limit: 3}, 3, 4, "decrypt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Log(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if len(result.Entries) != tt.wantCount {
				t.Fatalf("Expected %d entries, got %d", tt.wantCount, len(result.Entries))
			}
			if result.TotalEntriesBeforeFilter != tt.wantTotal {
				t.Errorf("Expected total %d, got %d", tt.wantTotal, result.TotalEntriesBeforeFilter)
			}
			if got := result.Entries[len(result.Entries)-1].Operation; got != tt.wantLastOp {
				t.Errorf("Expected last op %s, got %s", tt.wantLastOp, got)
			}
		})
	}
}

func TestLog_MissingFile(t *testing.T) {
	result, err := Log(context.Background(), LogOptions{Path: filepath.Join(t.TempDir(), "missing.jsonl")})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(result.Entries))
	}
}
