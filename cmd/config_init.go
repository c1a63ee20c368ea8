package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/configs"
	"github.com/PolarWolf314/ksdecrypt/internal/ui"
)

var (
	configInitKeystoreDir string
	configInitPattern     string
	configInitOutputFile  string
	configInitWorkers     int
	configInitAuditLog    string
)

func init() {
	configInitCmd.Flags().StringVar(&configInitKeystoreDir, "keystore-dir", "", "directory searched for keystore files")
	configInitCmd.Flags().StringVar(&configInitPattern, "pattern", "", "keystore filename prefix")
	configInitCmd.Flags().StringVar(&configInitOutputFile, "output-file", "", "default file name when saving a private key")
	configInitCmd.Flags().IntVar(&configInitWorkers, "workers", 0, "parallel decryptions for --all (0 = one per CPU)")
	configInitCmd.Flags().StringVar(&configInitAuditLog, "audit-log", "", "JSON Lines audit log file (empty disables)")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitKeystoreDir = ""
	configInitPattern = ""
	configInitOutputFile = ""
	configInitWorkers = 0
	configInitAuditLog = ""
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the configuration file",
	Long: `Writes ~/.config/ksdecrypt/config.toml.

Only the settings given as flags are changed; everything else keeps its
current value, or the default if the file does not exist yet. Environment
variables are not written to the file.

Examples:
  # Write the defaults
  ksdecrypt config init

  # Set the keystore directory and enable the audit log
  ksdecrypt config init --keystore-dir /data/node/keystore --audit-log ~/.local/state/ksdecrypt/audit.jsonl

  # Disable the audit log again
  ksdecrypt config init --audit-log ""`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")
		cmd.SilenceUsage = true

		existed := configs.Exists()
		settings, err := configs.LoadFile()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		flags := cmd.Flags()
		if flags.Changed("keystore-dir") {
			settings.KeystoreDir = configInitKeystoreDir
		}
		if flags.Changed("pattern") {
			if configInitPattern == "" {
				return fmt.Errorf("--pattern cannot be empty")
			}
			settings.Pattern = configInitPattern
		}
		if flags.Changed("output-file") {
			settings.OutputFile = configInitOutputFile
		}
		if flags.Changed("workers") {
			if configInitWorkers < 0 {
				return fmt.Errorf("--workers cannot be negative")
			}
			settings.Workers = configInitWorkers
		}
		if flags.Changed("audit-log") {
			settings.AuditLog = configInitAuditLog
		}

		ConfigLogger.Debugf("Saving config to %s", configs.ConfigFilePath())
		if err := configs.Save(settings); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}

		verb := "created"
		if existed {
			verb = "updated"
		}
		fmt.Println(ui.Success.Sprint("✓") + " Configuration " + verb + " at " + ui.Path.Sprint(configs.ConfigFilePath()))
		fmt.Println()
		outputSettingsText(settings)
		return nil
	},
}
