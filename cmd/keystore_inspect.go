package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/ui"
	"github.com/PolarWolf314/ksdecrypt/internal/workflows"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output in JSON format")
}

// resetInspectCommandState resets the inspect command's global state for testing.
func resetInspectCommandState() {
	inspectJSON = false
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show a keystore's metadata without decrypting it",
	Long: `Shows the version, id, address, KDF and cipher of a keystore file, and
whether ksdecrypt can decrypt it. No password is needed.

Examples:
  ksdecrypt keystore inspect keystore/UTC--2024-...
  ksdecrypt keystore inspect keystore/UTC--2024-... --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")
		cmd.SilenceUsage = true

		info, err := workflows.Inspect(cmd.Context(), args[0])
		if err != nil {
			fmt.Println(formatDecryptError(err))
			return reported(err)
		}

		if inspectJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal keystore info to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		outputInspectText(info)
		return nil
	},
}

func outputInspectText(info *workflows.KeystoreInfo) {
	fmt.Println(ui.Path.Sprint(info.Path))
	fmt.Println()

	if info.Address == "" && info.KDF == "" {
		fmt.Println(ui.Error.Sprint("✗") + " " + info.Reason)
		return
	}

	fmt.Printf("  %-10s %d\n", "Version:", info.Version)

	id := info.ID
	if id == "" {
		id = ui.Muted.Sprint("none")
	} else if !info.IDValid {
		id += " " + ui.Warning.Sprint("(not a UUID)")
	}
	fmt.Printf("  %-10s %s\n", "ID:", id)
	fmt.Printf("  %-10s %s\n", "Address:", ui.Address(info.Address))
	fmt.Printf("  %-10s %s\n", "KDF:", info.KDF)
	if len(info.KDFParams) > 0 {
		fmt.Printf("  %-10s %s\n", "Params:", string(info.KDFParams))
	}
	fmt.Printf("  %-10s %s\n", "Cipher:", info.Cipher)
	fmt.Println()

	if info.Supported {
		fmt.Println(ui.Success.Sprint("✓") + " This keystore can be decrypted with " + ui.Code.Sprint("ksdecrypt keystore decrypt"))
		return
	}
	fmt.Println(ui.Error.Sprint("✗") + " Cannot be decrypted: " + info.Reason)
}
