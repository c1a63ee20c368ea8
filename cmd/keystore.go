package cmd

import (
	logger "github.com/PolarWolf314/ksdecrypt/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	KeystoreCmd = &cobra.Command{
		Use:   "keystore",
		Short: "Decrypt and inspect Ethereum keystore files",
		Long: `Works with Web3 Secret Storage (version 3) keystore files, the UTC--... files
written by geth and most Ethereum clients.

Use these commands to:
  - Recover the private key from a PBKDF2 keystore (keystore decrypt)
  - List keystore files in a directory (keystore list)
  - Show a keystore's metadata without a passphrase (keystore inspect)
  - Review past decrypt attempts (keystore log)`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keystore command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeystoreCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeystoreCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	KeystoreCmd.AddCommand(decryptCmd)
	KeystoreCmd.AddCommand(listCmd)
	KeystoreCmd.AddCommand(inspectCmd)
	KeystoreCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetKeystoreCmd returns the KeystoreCmd for testing.
func GetKeystoreCmd() *cobra.Command {
	return KeystoreCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetDecryptCommandState()
	resetListCommandState()
	resetInspectCommandState()
	resetLogCommandState()
	resetCobraFlagState(KeystoreCmd)
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// resetCobraFlagState clears the Changed bit on every flag below root so
// one test's flags don't leak into the next.
func resetCobraFlagState(root *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	root.PersistentFlags().VisitAll(reset)
	root.Flags().VisitAll(reset)
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}
