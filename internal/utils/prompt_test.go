package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
)

func TestPrompter_Select(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"first", "1\n", 0, false},
		{"last", "3\n", 2, false},
		{"surrounding whitespace", "  2 \n", 1, false},
		{"zero", "0\n", 0, true},
		{"too large", "4\n", 0, true},
		{"negative", "-1\n", 0, true},
		{"not a number", "two\n", 0, true},
		{"empty", "\n", 0, true},
		{"end of input", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Select("Select keystore file (number): ", 3)
			if tt.wantErr {
				if !errors.Is(err, kerrors.ErrInvalidSelection) {
					t.Errorf("Expected ErrInvalidSelection, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %d, want %d", got, tt.want)
			}
			if !strings.Contains(out.String(), "Select keystore file") {
				t.Errorf("Expected prompt to be written, got: %q", out.String())
			}
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := p.Confirm("Save private key to file? (y/N): ")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPrompter_LineDefault(t *testing.T) {
	p := NewPrompter(strings.NewReader("\nkey.txt\n"), &bytes.Buffer{})

	first, err := p.Line("Filename [private_key.txt]: ", "private_key.txt")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if first != "private_key.txt" {
		t.Errorf("Expected default, got: %s", first)
	}

	second, err := p.Line("Filename [private_key.txt]: ", "private_key.txt")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if second != "key.txt" {
		t.Errorf("Expected key.txt, got: %s", second)
	}
}

func TestFormatMenu(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatMenu([]string{"/data/keystore/UTC--a", "/data/keystore/UTC--b"})
	if !strings.Contains(got, "1. UTC--a") || !strings.Contains(got, "2. UTC--b") {
		t.Errorf("Unexpected menu: %q", got)
	}
}

func TestPrompter_ReadPassphraseLineKeepsLaterInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("2\nhunter2\ny\n"), &bytes.Buffer{})

	index, err := p.Select("Select: ", 2)
	if err != nil || index != 1 {
		t.Fatalf("Select() = %d, %v", index, err)
	}

	passphrase, err := p.ReadPassphraseLine()
	if err != nil {
		t.Fatalf("ReadPassphraseLine failed: %v", err)
	}
	if string(passphrase) != "hunter2" {
		t.Errorf("Expected hunter2, got %q", passphrase)
	}

	save, err := p.Confirm("Save? ")
	if err != nil || !save {
		t.Errorf("Confirm() = %v, %v; expected true", save, err)
	}
}
