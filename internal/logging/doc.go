// Package logger provides leveled logging for journal CLI commands.
//
// Output verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows debug details
//
// Without flags, only warnings and errors are shown.
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("migrated key file from %s", path)
//
// Secrets must never be passed to any log method; log the operation and
// the paths involved, not the key material.
package logger
