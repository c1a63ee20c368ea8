package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/audit"
	"github.com/PolarWolf314/ksdecrypt/internal/ui"
	"github.com/PolarWolf314/ksdecrypt/internal/workflows"
)

var (
	logLimit     int
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of decrypt and save operations.

The audit log is only written when audit_log is set in the config (or
KSDECRYPT_AUDIT_LOG in the environment). Passwords and keys are never logged.

Examples:
  ksdecrypt keystore log                       # View full log
  ksdecrypt keystore log -n 10                 # Last 10 entries
  ksdecrypt keystore log --operation save      # Filter by operation
  ksdecrypt keystore log --json                # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")
	cmd.SilenceUsage = true

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if settings.AuditLog == "" {
		fmt.Println(ui.Info.Sprint("ℹ") + " Audit logging is disabled.\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ksdecrypt config init --audit-log FILE") + " to enable it")
		return nil
	}

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		Path:       settings.AuditLog,
		Limit:      logLimit,
		Operations: logOperation,
	})
	if err != nil {
		printError("Failed to read audit log", err)
		return reported(err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		details := e.File
		if e.Address != "" {
			details += " 0x" + e.Address
		}
		if e.Output != "" {
			details += " -> " + e.Output
		}
		if e.Error != "" {
			details += " (" + e.Error + ")"
		}
		fmt.Printf("%-27s  %-25s  %-7s  %-7s  %s\n", e.Timestamp, e.User, e.Operation, e.Outcome, details)
	}
}
