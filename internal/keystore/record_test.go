package keystore_test

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
	"github.com/PolarWolf314/ksdecrypt/internal/keystore"
)

func TestParse_WikipageVector(t *testing.T) {
	rec, err := keystore.Parse(readTestdata(t, "wikipage_pbkdf2.json"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if rec.Address != wikipageAddress {
		t.Errorf("Expected 0x prefix to be stripped, got: %s", rec.Address)
	}
	if rec.Version != 3 {
		t.Errorf("Expected version 3, got: %d", rec.Version)
	}
	if rec.ID != "3198bc9c-6672-5ab3-d995-4942343ae5b6" {
		t.Errorf("Unexpected id: %s", rec.ID)
	}
	if rec.Crypto.Cipher != "aes-128-ctr" {
		t.Errorf("Unexpected cipher: %s", rec.Crypto.Cipher)
	}
	if rec.Crypto.KDF != "pbkdf2" {
		t.Errorf("Unexpected kdf: %s", rec.Crypto.KDF)
	}
	if rec.Crypto.IV != "6087dab2f9fdbbfaddc31a909735c1e6" {
		t.Errorf("Unexpected iv: %s", rec.Crypto.IV)
	}
	if rec.Crypto.MAC != "517ead924a9d0dc3124507e3393d175ce3ff7c1e96529c6c555ce9e51205e9b2" {
		t.Errorf("Unexpected mac: %s", rec.Crypto.MAC)
	}
	if len(rec.Crypto.KDFParams) == 0 {
		t.Errorf("Expected kdfparams to be kept")
	}
}

func TestParse_SkipsByteOrderMark(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, readTestdata(t, "wikipage_pbkdf2.json")...)

	rec, err := keystore.Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.Address != wikipageAddress {
		t.Errorf("Unexpected address: %s", rec.Address)
	}
}

func TestParse_RawIsACopy(t *testing.T) {
	rec, err := keystore.Parse(readTestdata(t, "wikipage_pbkdf2.json"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	raw := rec.Raw()
	raw[0] = 'X'
	if rec.Raw()[0] == 'X' {
		t.Errorf("Raw should return a copy")
	}
}

func TestParse_AddressWithoutPrefixIsKept(t *testing.T) {
	content := []byte(`{
		"address": "0X1234",
		"crypto": {"cipher": "c", "ciphertext": "", "cipherparams": {"iv": ""}, "kdf": "k", "kdfparams": {}, "mac": ""}
	}`)

	rec, err := keystore.Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.Address != "0X1234" {
		t.Errorf("Only a lowercase 0x prefix is stripped, got: %s", rec.Address)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"not json", `{"address":`, ""},
		{"json array", `[]`, ""},
		{"missing address", `{"crypto": {}}`, "address"},
		{"address not a string", `{"address": 12, "crypto": {}}`, "address"},
		{"missing crypto", `{"address": "00"}`, "crypto"},
		{"both crypto blocks", `{"address": "00", "crypto": {}, "Crypto": {}}`, "crypto"},
		{"crypto not an object", `{"address": "00", "crypto": "x"}`, "crypto"},
		{"crypto null", `{"address": "00", "crypto": null}`, "crypto"},
		{"missing cipher", `{"address": "00", "crypto": {"ciphertext": "", "cipherparams": {"iv": ""}, "kdf": "pbkdf2", "kdfparams": {}, "mac": ""}}`, "crypto.cipher"},
		{"missing ciphertext", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "cipherparams": {"iv": ""}, "kdf": "pbkdf2", "kdfparams": {}, "mac": ""}}`, "crypto.ciphertext"},
		{"missing cipherparams", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "ciphertext": "", "kdf": "pbkdf2", "kdfparams": {}, "mac": ""}}`, "crypto.cipherparams"},
		{"missing iv", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "ciphertext": "", "cipherparams": {}, "kdf": "pbkdf2", "kdfparams": {}, "mac": ""}}`, "crypto.cipherparams.iv"},
		{"missing kdf", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "ciphertext": "", "cipherparams": {"iv": ""}, "kdfparams": {}, "mac": ""}}`, "crypto.kdf"},
		{"missing kdfparams", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "ciphertext": "", "cipherparams": {"iv": ""}, "kdf": "pbkdf2", "mac": ""}}`, "crypto.kdfparams"},
		{"missing mac", `{"address": "00", "crypto": {"cipher": "aes-128-ctr", "ciphertext": "", "cipherparams": {"iv": ""}, "kdf": "pbkdf2", "kdfparams": {}}}`, "crypto.mac"},
		{"version not a number", `{"address": "00", "version": "three", "crypto": {}}`, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keystore.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !errors.Is(err, kerrors.ErrParse) {
				t.Errorf("Expected ErrParse, got: %v", err)
			}
			var parseErr *keystore.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got: %T", err)
			}
			if parseErr.Field != tt.field {
				t.Errorf("Expected field %q, got: %q", tt.field, parseErr.Field)
			}
		})
	}
}

func TestRecord_HexAccessors(t *testing.T) {
	rec := &keystore.Record{Crypto: keystore.CryptoParams{CipherText: "00ff", IV: "xyz"}}

	ct, err := rec.CipherTextBytes()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(ct) != 2 || ct[1] != 0xff {
		t.Errorf("Unexpected ciphertext bytes: %x", ct)
	}

	_, err = rec.IVBytes()
	var parseErr *keystore.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got: %v", err)
	}
	if parseErr.Field != "crypto.cipherparams.iv" {
		t.Errorf("Unexpected field: %s", parseErr.Field)
	}
}
