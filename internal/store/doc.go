// Package store provides the encrypted journal database.
//
// Entries live in a SQLite database (via bun and sqliteshim). Titles and
// bodies are sealed per-row with NaCl secretbox under a key derived from
// the secret owned by the keychain manager; the database file itself is
// ordinary SQLite and safe to copy around while encrypted.
//
// # Key mismatch recovery
//
// A sealed canary row is written when the database is created. If a
// later open cannot unseal it, the active key is not the one the
// database was written with (typically an imported or restored database,
// or a half-migrated install). The opener then tries a last-chance
// migration of any legacy key file, and only if allow_destructive_reset
// is configured will it discard the contents and start over.
package store
