// Package keychain manages the lifecycle of the database encryption key.
//
// Exactly one stable secret protects the encrypted journal database. The
// secret lives in the OS secure credential store whenever possible; older
// installs kept it in a plaintext journal.key file under the application
// data directory, and this package migrates such files into the secure
// store and removes them without ever losing access to existing data.
//
// # Where the key comes from
//
// A Manager resolves the key in order: the process-wide in-memory cache,
// the secure store, a legacy key file (migrated on discovery), and
// finally fresh generation. Two entry points cover the two callers:
//
//   - InitializeKey returns the secret, performs migration inline, and
//     opportunistically removes a now-redundant key file.
//   - Authorize only ensures the secret is cached, prompting the user at
//     most once. Legacy-file cleanup is deferred to the caller so the
//     database can open against the file-based key first if it needs to.
//     The store opener uses this entry point.
//
// # Migration safety
//
// Migration copies the key file to a <file>.backup sidecar before any
// destructive step. If reading, storing, or deleting fails, the backup is
// restored and then removed; the original failure is always the one
// returned. A failed delete restores the file even though the secret is
// already in the store, so both copies exist rather than leaving the
// store state in doubt.
//
// # Concurrency
//
// The secret cache is write-once: racing initializers converge on one
// value. Migration is serialized per manager. Two separate app processes
// migrating the same file simultaneously are not guarded; the backup
// sidecar limits the damage but this remains a known risk.
package keychain
