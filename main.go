package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "ksdecrypt",
	Short: "ksdecrypt - recover private keys from Ethereum keystore files.",
	Long: `ksdecrypt decrypts Web3 Secret Storage (version 3) keystore files, the
UTC--... files written by geth and most Ethereum clients, and prints the
private key and address.

Features:
  - Pick a keystore from a node's keystore directory
  - Decrypt PBKDF2 keystores, with guidance for scrypt ones
  - Save recovered keys to owner-only files
  - Decrypt every keystore in a directory in parallel
  - Keep an optional local audit log

Usage:
  ksdecrypt <command> [flags]

Available Commands:
  keystore   Decrypt and inspect keystore files
  config     Manage ksdecrypt configuration

Run 'ksdecrypt help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("ksdecrypt", "standard", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'ksdecrypt --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.KeystoreCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	// Wipe locked buffers if the process is interrupted mid-decrypt.
	memguard.CatchInterrupt()

	err := rootCmd.Execute()
	if err != nil && !cmd.IsReported(err) {
		fmt.Println(err)
	}

	memguard.Purge()
	if err != nil {
		os.Exit(1)
	}
}
