// Package configs loads and saves ksdecrypt settings.
//
// Settings live in a TOML file under the user's config directory
// (~/.config/ksdecrypt/config.toml on Linux). Every key can be overridden
// from the environment with a KSDECRYPT_ prefix:
//
//	keystore_dir  KSDECRYPT_KEYSTORE_DIR  directory searched for keystores
//	pattern       KSDECRYPT_PATTERN       keystore filename prefix (UTC--)
//	output_file   KSDECRYPT_OUTPUT_FILE   suggested private key file name
//	workers       KSDECRYPT_WORKERS       parallel decryptions for --all
//	audit_log     KSDECRYPT_AUDIT_LOG     JSON Lines audit file, empty disables
//
// Precedence is defaults, then the file, then the environment. Command-line
// flags are applied on top by the cmd package.
//
// The config file never contains secrets, but it is still written with
// 0600 permissions.
package configs
