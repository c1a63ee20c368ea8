package configs

import (
	"os"
	"path/filepath"
)

// UserSettings holds per-user locations. It does not depend on the working
// directory, so it is resolved once at startup.
type UserSettings struct {
	UserConfigsPath string
}

var UserKsdecryptSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// No home directory (e.g. a bare container): keep config next to the binary's cwd.
		configDir = "."
	}

	UserKsdecryptSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "ksdecrypt"),
	}
}

// ConfigFilePath returns the path of the user's config.toml.
func ConfigFilePath() string {
	return filepath.Join(UserKsdecryptSettings.UserConfigsPath, "config.toml")
}
