package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/ksdecrypt/internal/audit"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore/keystoretest"
	"github.com/PolarWolf314/ksdecrypt/internal/workflows"
)

func TestListCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeKeystoreFile(t, dir, "UTC--1", keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{})
	writeKeystoreFile(t, dir, "UTC--2", keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{KDF: keystore.KDFScrypt})

	output, err := runCLI("", "keystore", "list", "--dir", dir)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	for _, want := range []string{"UTC--1", "UTC--2", "✓", "✗", "scrypt", "0x" + keystoretest.DefaultAddress} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestListCommand_JSON(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeKeystoreFile(t, dir, "UTC--1", keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{})

	output, err := captureStdout(func() error {
		return createTestCLI("", "keystore", "list", "--dir", dir, "--json").Execute()
	})
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	var infos []workflows.KeystoreInfo
	if err := json.Unmarshal([]byte(output), &infos); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", output, err)
	}
	if len(infos) != 1 || !infos[0].Supported {
		t.Errorf("Unexpected infos: %+v", infos)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	path := writeKeystoreFile(t, dir, "UTC--1", keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{})

	output, err := runCLI("", "keystore", "inspect", path)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	for _, want := range []string{"Version:", "pbkdf2", "aes-128-ctr", "can be decrypted"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestInspectCommand_RequiresFile(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI("", "keystore", "inspect"); err == nil {
		t.Error("Expected an error without FILE")
	}
}

func TestLogCommand_Disabled(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI("", "keystore", "log")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(output, "Audit logging is disabled") {
		t.Errorf("Unexpected output: %s", output)
	}
}

func TestLogCommand_AfterDecrypt(t *testing.T) {
	dir := setupTestEnvironment(t)
	logPath := filepath.Join(dir, "audit.jsonl")
	t.Setenv("KSDECRYPT_AUDIT_LOG", logPath)

	path := writeKeystoreFile(t, dir, "UTC--1", keystoretest.PrivateKey(t), []byte("pw"), keystoretest.Options{})
	if _, err := runCLI("pw\n", "keystore", "decrypt", path, "--password-stdin", "--no-save"); err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	ResetGlobalState()
	_, _ = runCLI("bad\n", "keystore", "decrypt", path, "--password-stdin", "--no-save")
	ResetGlobalState()

	output, err := captureStdout(func() error {
		return createTestCLI("", "keystore", "log", "--json").Execute()
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	var entries []audit.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", output, err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Outcome != audit.OutcomeSuccess || entries[1].Outcome != audit.OutcomeFailure {
		t.Errorf("Unexpected outcomes: %s, %s", entries[0].Outcome, entries[1].Outcome)
	}

	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "\"bad\"") {
		t.Errorf("Password leaked into audit log: %s", data)
	}
}
