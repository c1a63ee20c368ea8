package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/configs"
	"github.com/PolarWolf314/ksdecrypt/internal/ui"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the effective ksdecrypt configuration: the defaults, overridden
by ~/.config/ksdecrypt/config.toml, overridden by KSDECRYPT_* environment
variables.

Examples:
  ksdecrypt config show
  ksdecrypt config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		cmd.SilenceUsage = true

		settings, err := configs.Load()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := ui.Path.Sprint(configs.ConfigFilePath())
		if !configs.Exists() {
			source = ui.Muted.Sprint("defaults, no config file")
		}
		fmt.Println(ui.Info.Sprint("Configuration") + " " + source + ":")
		fmt.Println()
		outputSettingsText(settings)
		return nil
	},
}

// outputSettingsText prints settings in human-readable format.
func outputSettingsText(settings *configs.Settings) {
	auditLog := settings.AuditLog
	if auditLog == "" {
		auditLog = ui.Muted.Sprint("disabled")
	}
	workers := fmt.Sprintf("%d", settings.EffectiveWorkers())
	if settings.Workers == 0 {
		workers += " " + ui.Muted.Sprint("one per CPU")
	}

	fmt.Printf("  %-14s %s\n", "Keystore dir:", ui.Path.Sprint(settings.KeystoreDir))
	fmt.Printf("  %-14s %s\n", "Pattern:", settings.Pattern)
	fmt.Printf("  %-14s %s\n", "Output file:", settings.OutputFile)
	fmt.Printf("  %-14s %s\n", "Workers:", workers)
	fmt.Printf("  %-14s %s\n", "Audit log:", auditLog)
}
