// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands through a fresh root command.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/ksdecrypt/internal/configs"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore/keystoretest"
	logger "github.com/PolarWolf314/ksdecrypt/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user config at a temp directory, clears
// KSDECRYPT_* overrides and resets command state. It returns a temp
// directory for keystores and output files.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	originalConfigsPath := configs.UserKsdecryptSettings.UserConfigsPath
	configs.UserKsdecryptSettings.UserConfigsPath = filepath.Join(t.TempDir(), "config")

	for _, name := range []string{"KEYSTORE_DIR", "PATTERN", "OUTPUT_FILE", "WORKERS", "AUDIT_LOG"} {
		t.Setenv(configs.EnvPrefix+"_"+name, "")
		os.Unsetenv(configs.EnvPrefix + "_" + name)
	}
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	ResetConfigState()

	t.Cleanup(func() {
		configs.UserKsdecryptSettings.UserConfigsPath = originalConfigsPath
		ResetGlobalState()
		ResetConfigState()
	})

	return t.TempDir()
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// captureStdout is captureOutput with stderr kept separate, for JSON output.
func captureStdout(fn func() error) (string, error) {
	originalStdout := os.Stdout
	reader, writer, _ := os.Pipe()
	os.Stdout = writer

	outChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, reader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outChan <- buf.String()
	}()

	err := fn()

	writer.Close()
	os.Stdout = originalStdout

	return <-outChan, err
}

// createTestCLI creates a complete CLI instance for testing with the given arguments and stdin.
func createTestCLI(stdin string, args ...string) *cobra.Command {
	Logger = logger.Logger{}
	ConfigLogger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "ksdecrypt",
		Short:         "ksdecrypt - recover private keys from Ethereum keystore files.",
		SilenceErrors: true,
	}
	rootCmd.AddCommand(KeystoreCmd)
	rootCmd.AddCommand(ConfigCmd)

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI runs the CLI and returns its combined output.
func runCLI(stdin string, args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(stdin, args...).Execute()
	})
}

// writeKeystoreFile seals privateKey under password and writes it to dir/name.
func writeKeystoreFile(t *testing.T, dir, name string, privateKey, password []byte, opts keystoretest.Options) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, keystoretest.Seal(t, privateKey, password, opts), 0600); err != nil {
		t.Fatalf("Failed to write keystore: %v", err)
	}
	return path
}
