package utils

import (
	"fmt"
	"os"
	"runtime"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin: %w", kerrors.ErrNotATerminal)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseFromTTY prompts the user for a passphrase from /dev/tty (or CON on Windows).
// This is used when stdin is redirected but a human is still at the keyboard.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	ttyPath := ttyDevice()

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", ttyPath, kerrors.ErrNotATerminal)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// PromptPassphrase reads a hidden passphrase from stdin when it is a
// terminal and from the controlling TTY otherwise.
func PromptPassphrase(prompt string) ([]byte, error) {
	if IsTerminal() {
		return ReadPassphrase(prompt)
	}
	if IsTTYAvailable() {
		return ReadPassphraseFromTTY(prompt)
	}
	return nil, fmt.Errorf("cannot prompt for passphrase (hint: use --password-stdin): %w", kerrors.ErrNotATerminal)
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTTYAvailable returns true if /dev/tty (or CON on Windows) is available for reading.
func IsTTYAvailable() bool {
	tty, err := os.Open(ttyDevice())
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}

func ttyDevice() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
