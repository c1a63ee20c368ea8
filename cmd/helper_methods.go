package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/ksdecrypt/internal/configs"
	"github.com/PolarWolf314/ksdecrypt/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner starts a spinner with the given message unless verbose or
// debug output is on, since log lines would tear through it. The returned
// function stops the spinner and must run before anything else is printed.
func startSpinner(message string, verbose bool) func() {
	quiet := !verbose && !debug
	if !quiet {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	s.Start()
	log.SetOutput(io.Discard)

	return func() {
		s.Stop()
		log.SetOutput(os.Stderr)
	}
}

// loadSettings loads settings, logging where they came from.
func loadSettings() (*configs.Settings, error) {
	Logger.Debugf("Loading settings from %s", configs.ConfigFilePath())
	settings, err := configs.Load()
	if err != nil {
		return nil, Logger.ErrorfAndReturn("Failed to load settings: %v", err)
	}
	Logger.Debugf("Settings: keystore_dir=%s pattern=%s output_file=%s workers=%d audit_log=%q",
		settings.KeystoreDir, settings.Pattern, settings.OutputFile, settings.Workers, settings.AuditLog)
	return settings, nil
}

// printError prints a formatted error message to stdout.
func printError(message string, err error) {
	fmt.Println(ui.Error.Sprint("✗") + " " + message + ": " + err.Error())
}

// reportedError marks an error whose message has already been shown to the
// user. main exits non-zero without printing it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported returns true if err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
