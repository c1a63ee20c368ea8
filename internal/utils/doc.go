// Package utils provides shared utility functions for ksdecrypt.
//
// This package contains general-purpose helpers used by the commands and
// workflows. Nothing here performs cryptography.
//
// # Filesystem Utilities
//
//   - FindKeystoreFiles: lists keystore files in a directory by name prefix
//   - FileExists: reports whether a path exists
//   - FormatMenu: formats file paths as a numbered menu
//
// # System Utilities
//
//   - GetUsername, GetHostname: identify the operator
//   - CurrentUser: "user@host" for audit records
//
// # Terminal Utilities
//
// Hidden passphrase input via golang.org/x/term:
//   - ReadPassphrase: reads from stdin when it is a terminal
//   - ReadPassphraseFromTTY: reads from /dev/tty when stdin is redirected
//   - PromptPassphrase: picks whichever of the two is available
//   - ReadPassphraseLine: reads a passphrase piped on stdin
//
// # Prompts
//
// Prompter asks numbered-menu and yes/no questions over any reader and
// writer, so commands can be driven from tests.
package utils
