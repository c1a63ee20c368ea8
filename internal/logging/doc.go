// Package logger provides leveled logging for ksdecrypt commands.
//
// Verbosity is controlled by two command-line flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags only WarnfAlways output is shown. All log output goes to
// stderr so stdout stays reserved for command results such as a recovered
// private key.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the formatted error
//
// Never pass a passphrase or a private key to any of these methods.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Decrypting %s", path)
package logger
