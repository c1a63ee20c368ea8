package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/ui"
	"github.com/PolarWolf314/ksdecrypt/internal/workflows"
)

var (
	listDir  string
	listJSON bool
)

func init() {
	listCmd.Flags().StringVar(&listDir, "dir", "", "keystore directory to search (overrides config)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listDir = ""
	listJSON = false
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keystore files in the keystore directory",
	Long: `Lists keystore files in the keystore directory with their address, KDF and
whether ksdecrypt can decrypt them. No password is needed.

Examples:
  ksdecrypt keystore list
  ksdecrypt keystore list --dir /data/node/keystore
  ksdecrypt keystore list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		cmd.SilenceUsage = true

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if listDir != "" {
			settings.KeystoreDir = listDir
		}

		infos, err := workflows.List(cmd.Context(), workflows.DiscoverOptions{Dir: settings.KeystoreDir, Pattern: settings.Pattern})
		if err != nil {
			fmt.Println(formatDecryptError(err))
			return reported(err)
		}
		Logger.Debugf("Found %d keystore files", len(infos))

		if listJSON {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal keystores to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("Keystore files in " + ui.Path.Sprint(settings.KeystoreDir) + ":")
		for i, info := range infos {
			status := ui.Success.Sprint("✓")
			if !info.Supported {
				status = ui.Error.Sprint("✗")
			}

			line := fmt.Sprintf("  %2d. %s %s", i+1, status, filepath.Base(info.Path))
			if info.Address != "" {
				line += "  " + ui.Address(info.Address)
			}
			if info.KDF != "" {
				line += "  " + ui.Muted.Sprint(info.KDF)
			}
			fmt.Println(line)
		}
		return nil
	},
}
