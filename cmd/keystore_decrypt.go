package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ksdecrypt/internal/configs"
	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
	"github.com/PolarWolf314/ksdecrypt/internal/ui"
	"github.com/PolarWolf314/ksdecrypt/internal/utils"
	"github.com/PolarWolf314/ksdecrypt/internal/workflows"
)

var (
	decryptAll           bool
	decryptOutput        string
	decryptForce         bool
	decryptNoSave        bool
	decryptJSON          bool
	decryptDir           string
	decryptPasswordStdin bool
)

func init() {
	decryptCmd.Flags().BoolVar(&decryptAll, "all", false, "decrypt every keystore in the keystore directory with one password")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "save the private key to this file without asking")
	decryptCmd.Flags().BoolVarP(&decryptForce, "force", "f", false, "overwrite the output file if it exists")
	decryptCmd.Flags().BoolVar(&decryptNoSave, "no-save", false, "never save the private key to a file")
	decryptCmd.Flags().BoolVar(&decryptJSON, "json", false, "output as JSON")
	decryptCmd.Flags().StringVar(&decryptDir, "dir", "", "keystore directory to search (overrides config)")
	decryptCmd.Flags().BoolVar(&decryptPasswordStdin, "password-stdin", false, "read the password from the first line of stdin")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptAll = false
	decryptOutput = ""
	decryptForce = false
	decryptNoSave = false
	decryptJSON = false
	decryptDir = ""
	decryptPasswordStdin = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [FILE]",
	Short: "Recover the private key from a keystore file",
	Long: `Decrypts a Web3 Secret Storage (version 3) keystore and prints its private key
and address.

Without FILE, keystore files in the configured keystore directory are listed
and you pick one by number. The password is read without echo, or from the
first line of stdin with --password-stdin.

Only PBKDF2 keystores can be decrypted. For scrypt keystores the keystore is
printed along with other ways to recover it.

After decrypting you are asked whether to save the key. Saved files are
readable only by you (mode 0600) and an existing file is never overwritten
unless --force is given.

Examples:
  ksdecrypt keystore decrypt                                  # Pick from the keystore directory
  ksdecrypt keystore decrypt keystore/UTC--2024-...           # Decrypt a specific file
  ksdecrypt keystore decrypt FILE -o key.txt                  # Save without asking
  ksdecrypt keystore decrypt FILE --no-save                   # Print only
  ksdecrypt keystore decrypt --all --password-stdin < pw.txt  # Every file, one password
  ksdecrypt keystore decrypt FILE --json --no-save            # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecrypt,
}

// decryptOutputJSON is the --json shape of one decrypted keystore.
type decryptOutputJSON struct {
	Path       string `json:"path"`
	Address    string `json:"address,omitempty"`
	PrivateKey string `json:"private_key,omitempty"`
	KDF        string `json:"kdf,omitempty"`
	SavedTo    string `json:"saved_to,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")
	Logger.Debugf("Flags: all=%t, output=%q, force=%t, no-save=%t, json=%t, dir=%q, password-stdin=%t",
		decryptAll, decryptOutput, decryptForce, decryptNoSave, decryptJSON, decryptDir, decryptPasswordStdin)

	switch {
	case decryptAll && len(args) > 0:
		return fmt.Errorf("--all cannot be combined with a FILE argument")
	case decryptAll && decryptOutput != "":
		return fmt.Errorf("--output cannot be combined with --all")
	case decryptNoSave && decryptOutput != "":
		return fmt.Errorf("--output cannot be combined with --no-save")
	}
	cmd.SilenceUsage = true

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if decryptDir != "" {
		settings.KeystoreDir = decryptDir
	}

	ctx := cmd.Context()
	messages := messageWriter()
	prompter := utils.NewPrompter(cmd.InOrStdin(), messages)

	if decryptAll {
		return runDecryptAll(ctx, settings, prompter)
	}

	path, err := selectKeystore(ctx, args, settings, prompter)
	if err != nil {
		fmt.Fprintln(messages, formatDecryptError(err))
		return reported(err)
	}
	Logger.Infof("Selected keystore %s", path)

	passphrase, err := readPassphrase(prompter)
	if err != nil {
		fmt.Fprintln(messages, formatDecryptError(err))
		return reported(err)
	}
	defer passphrase.Destroy()

	cleanup := startSpinner("Decrypting keystore...", verbose || decryptJSON)
	result, err := workflows.Decrypt(ctx, workflows.DecryptOptions{
		Path:       path,
		Passphrase: passphrase.Bytes(),
		AuditLog:   settings.AuditLog,
	})
	cleanup()
	if err != nil {
		Logger.Debugf("Decrypt failed: %v", err)
		fmt.Fprintln(messages, formatDecryptError(err))
		return reported(err)
	}
	defer result.Destroy()

	Logger.Infof("Decrypted %s (kdf=%s)", path, result.KDF)

	if decryptJSON {
		return outputDecryptJSON(ctx, result, settings)
	}

	outputDecryptText(result)
	return savePrompted(ctx, result, settings, prompter)
}

// selectKeystore returns the FILE argument, or lists the keystore directory
// and asks for a number.
func selectKeystore(ctx context.Context, args []string, settings *configs.Settings, prompter *utils.Prompter) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	Logger.Debugf("Searching %s for %s* files", settings.KeystoreDir, settings.Pattern)
	files, err := workflows.Discover(ctx, workflows.DiscoverOptions{Dir: settings.KeystoreDir, Pattern: settings.Pattern})
	if err != nil {
		return "", err
	}

	messages := messageWriter()
	fmt.Fprintln(messages, "Found keystore files:")
	fmt.Fprint(messages, utils.FormatMenu(files))

	index, err := prompter.Select("Select a keystore file (number): ", len(files))
	if err != nil {
		return "", err
	}
	return files[index], nil
}

// readPassphrase moves the password into locked memory. The caller must
// Destroy the returned buffer.
func readPassphrase(prompter *utils.Prompter) (*memguard.LockedBuffer, error) {
	var (
		raw []byte
		err error
	)
	if decryptPasswordStdin {
		Logger.Debugf("Reading password from stdin")
		raw, err = prompter.ReadPassphraseLine()
	} else {
		raw, err = utils.PromptPassphrase("Enter keystore password: ")
	}
	if err != nil {
		return nil, err
	}
	return memguard.NewBufferFromBytes(raw), nil
}

func outputDecryptText(result *workflows.DecryptResult) {
	fmt.Println()
	fmt.Println(ui.Success.Sprint("✓") + " Successfully extracted private key from " + ui.Path.Sprint(filepath.Base(result.Path)))
	fmt.Println("  Private Key: " + ui.Secret.Sprint(result.PrivateKeyHex()))
	fmt.Println("  Address:     " + ui.Address(result.Address))
	fmt.Println(ui.Info.Sprint("→") + " Import this private key into your wallet, then remove any copies")
}

func outputDecryptJSON(ctx context.Context, result *workflows.DecryptResult, settings *configs.Settings) error {
	out := decryptOutputJSON{
		Path:       result.Path,
		Address:    result.Address,
		PrivateKey: result.PrivateKeyHex(),
		KDF:        result.KDF,
	}

	if decryptOutput != "" && !decryptNoSave {
		if err := savePrivateKey(ctx, result, decryptOutput, settings); err != nil {
			return err
		}
		out.SavedTo = decryptOutput
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// savePrompted saves to --output, or asks whether and where to save.
func savePrompted(ctx context.Context, result *workflows.DecryptResult, settings *configs.Settings, prompter *utils.Prompter) error {
	if decryptNoSave {
		Logger.Debugf("Skipping save (--no-save)")
		return nil
	}

	path := decryptOutput
	if path == "" {
		save, err := prompter.Confirm("\nDo you want to save the private key to a file? (y/N): ")
		if err != nil {
			return err
		}
		if !save {
			return nil
		}

		path, err = prompter.Line(fmt.Sprintf("Enter filename (default: %s): ", settings.OutputFile), settings.OutputFile)
		if err != nil {
			return err
		}
	}

	if err := savePrivateKey(ctx, result, path, settings); err != nil {
		return err
	}

	fmt.Println(ui.Success.Sprint("✓") + " Private key saved to " + ui.Path.Sprint(path) + " " + ui.Muted.Sprint("mode 0600"))
	fmt.Println(ui.Warning.Sprint("⚠") + " Keep this file secure and delete it when no longer needed")
	return nil
}

func savePrivateKey(ctx context.Context, result *workflows.DecryptResult, path string, settings *configs.Settings) error {
	Logger.Infof("Saving private key to %s", path)
	if decryptForce && utils.FileExists(path) {
		Logger.WarnfAlways("Overwriting existing file %s", path)
	}
	err := workflows.SavePrivateKey(ctx, workflows.SaveOptions{
		Result:   result.Result,
		Path:     path,
		Force:    decryptForce,
		Source:   result.Path,
		AuditLog: settings.AuditLog,
	})
	if err != nil {
		fmt.Fprintln(messageWriter(), formatSaveError(err))
		return reported(err)
	}
	return nil
}

func runDecryptAll(ctx context.Context, settings *configs.Settings, prompter *utils.Prompter) error {
	messages := messageWriter()

	files, err := workflows.Discover(ctx, workflows.DiscoverOptions{Dir: settings.KeystoreDir, Pattern: settings.Pattern})
	if err != nil {
		fmt.Fprintln(messages, formatDecryptError(err))
		return reported(err)
	}
	Logger.Infof("Found %d keystore files", len(files))

	passphrase, err := readPassphrase(prompter)
	if err != nil {
		fmt.Fprintln(messages, formatDecryptError(err))
		return reported(err)
	}
	defer passphrase.Destroy()

	workers := settings.EffectiveWorkers()
	Logger.Debugf("Decrypting with %d workers", workers)

	cleanup := startSpinner(fmt.Sprintf("Decrypting %d keystores...", len(files)), verbose || decryptJSON)
	result, err := workflows.DecryptBatch(ctx, workflows.BatchOptions{
		Paths:      files,
		Passphrase: passphrase.Bytes(),
		Workers:    workers,
		AuditLog:   settings.AuditLog,
	})
	cleanup()
	defer result.Destroy()
	if err != nil {
		return err
	}

	if decryptJSON {
		if err := outputBatchJSON(result); err != nil {
			return err
		}
	} else {
		outputBatchText(result)
	}

	if failed := result.Failed(); failed > 0 {
		return reported(fmt.Errorf("%d of %d keystores could not be decrypted", failed, len(result.Items)))
	}
	return nil
}

func outputBatchText(result *workflows.BatchResult) {
	for _, item := range result.Items {
		name := ui.Path.Sprint(filepath.Base(item.Path))
		if item.Err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + name + ": " + shortDecryptError(item.Err))
			continue
		}
		fmt.Println(ui.Success.Sprint("✓") + " " + name)
		fmt.Println("  Private Key: " + ui.Secret.Sprint(item.Result.PrivateKeyHex()))
		fmt.Println("  Address:     " + ui.Address(item.Result.Address))
	}
	fmt.Println()
	fmt.Printf("%d decrypted, %d failed\n", result.Succeeded(), result.Failed())
}

func outputBatchJSON(result *workflows.BatchResult) error {
	out := make([]decryptOutputJSON, 0, len(result.Items))
	for _, item := range result.Items {
		entry := decryptOutputJSON{Path: item.Path}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		} else {
			entry.Address = item.Result.Address
			entry.PrivateKey = item.Result.PrivateKeyHex()
			entry.KDF = item.Result.KDF
		}
		out = append(out, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// messageWriter is where prompts and errors go: stdout normally, stderr when
// stdout carries JSON.
func messageWriter() io.Writer {
	if decryptJSON {
		return os.Stderr
	}
	return os.Stdout
}

// formatDecryptError formats a decrypt error for display to the user.
func formatDecryptError(err error) string {
	var kdfErr *keystore.UnsupportedKDFError

	switch {
	case errors.As(err, &kdfErr) && kdfErr.KDF == keystore.KDFScrypt:
		return formatScryptGuidance(kdfErr.Keystore)

	case errors.Is(err, kerrors.ErrKeystoreNotFound):
		return ui.Error.Sprint("✗") + " Keystore file not found: " + err.Error()

	case errors.Is(err, kerrors.ErrKeystoreDirNotFound):
		return ui.Error.Sprint("✗") + " Keystore directory not found: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--dir") + " or run " + ui.Code.Sprint("ksdecrypt config init --keystore-dir DIR")

	case errors.Is(err, kerrors.ErrNoKeystoreFiles):
		return ui.Error.Sprint("✗") + " No keystore files found: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidSelection):
		return ui.Error.Sprint("✗") + " Invalid selection: " + err.Error()

	case errors.Is(err, kerrors.ErrNotATerminal):
		return ui.Error.Sprint("✗") + " Cannot prompt for the password without a terminal\n" +
			ui.Info.Sprint("→") + " Pipe the password in and pass " + ui.Flag.Sprint("--password-stdin")

	default:
		return ui.Error.Sprint("✗") + " " + shortDecryptError(err)
	}
}

// shortDecryptError is a one-line description of a keystore failure.
func shortDecryptError(err error) string {
	var (
		kdfErr    *keystore.UnsupportedKDFError
		cipherErr *keystore.UnsupportedCipherError
	)

	switch {
	case errors.Is(err, kerrors.ErrIntegrity):
		return "MAC mismatch: incorrect password or file corruption"
	case errors.As(err, &kdfErr):
		return "Unsupported KDF: " + ui.Highlight.Sprint(kdfErr.KDF)
	case errors.As(err, &cipherErr):
		return "Unsupported cipher: " + ui.Highlight.Sprint(cipherErr.Cipher)
	case errors.Is(err, kerrors.ErrParse):
		return "Malformed keystore: " + err.Error()
	default:
		return "Failed to decrypt keystore: " + err.Error()
	}
}

// formatScryptGuidance prints the keystore and the ways to recover a scrypt
// keystore without this tool.
func formatScryptGuidance(raw []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}

	return ui.Warning.Sprint("⚠") + " This keystore uses the " + ui.Highlight.Sprint("scrypt") + " KDF, which ksdecrypt cannot decrypt.\n" +
		ui.Warning.Sprint("⚠") + " Keystore details for reference:\n" +
		pretty.String() + "\n\n" +
		"Please try one of these options:\n" +
		"  1. Decrypt it with a tool that supports scrypt (for example " + ui.Code.Sprint("ethkey inspect --private <keystore file>") + ")\n" +
		"  2. Use an offline Ethereum keystore decryptor with this file (be careful with security)\n" +
		"  3. Export the account using the node that created it"
}

// formatSaveError formats a save error for display to the user.
func formatSaveError(err error) string {
	if errors.Is(err, kerrors.ErrOutputExists) {
		return ui.Error.Sprint("✗") + " Output file already exists: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Choose another name or pass " + ui.Flag.Sprint("--force") + " to overwrite it"
	}
	return ui.Error.Sprint("✗") + " Failed to save private key: " + err.Error()
}
