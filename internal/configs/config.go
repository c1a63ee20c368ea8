package configs

import (
	"fmt"
	"os"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. KSDECRYPT_KEYSTORE_DIR.
const EnvPrefix = "KSDECRYPT"

// Settings configures keystore discovery, output and auditing.
type Settings struct {
	// KeystoreDir is searched when no keystore file is given.
	KeystoreDir string `toml:"keystore_dir" json:"keystore_dir" envconfig:"KEYSTORE_DIR"`

	// Pattern is the filename prefix of keystore files in KeystoreDir.
	Pattern string `toml:"pattern" json:"pattern" envconfig:"PATTERN"`

	// OutputFile is the suggested file name when saving a private key.
	OutputFile string `toml:"output_file" json:"output_file" envconfig:"OUTPUT_FILE"`

	// Workers bounds parallel decryption with --all. Zero means one per CPU.
	Workers int `toml:"workers" json:"workers" envconfig:"WORKERS"`

	// AuditLog is a JSON Lines file recording decrypt attempts. Empty disables it.
	AuditLog string `toml:"audit_log" json:"audit_log" envconfig:"AUDIT_LOG"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		KeystoreDir: "keystore",
		Pattern:     "UTC--",
		OutputFile:  "private_key.txt",
	}
}

// Load reads config.toml if it exists and then applies KSDECRYPT_*
// environment overrides on top.
func Load() (*Settings, error) {
	settings, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, settings); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	return settings, nil
}

// LoadFile reads config.toml over the defaults, ignoring the environment.
// A missing file yields the defaults.
func LoadFile() (*Settings, error) {
	settings := DefaultSettings()

	configPath := ConfigFilePath()
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to stat config %s: %w", configPath, err)
	}

	if err := LoadTOML(configPath, settings); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return settings, nil
}

// Save writes settings to config.toml.
func Save(settings *Settings) error {
	if err := SaveTOML(ConfigFilePath(), settings); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Exists reports whether config.toml has been written.
func Exists() bool {
	_, err := os.Stat(ConfigFilePath())
	return err == nil
}

// EffectiveWorkers returns the worker count to use for batch decryption.
func (s *Settings) EffectiveWorkers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}
