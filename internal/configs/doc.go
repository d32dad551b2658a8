// Package configs provides application settings and configuration for
// journal.
//
// Settings (directory locations, build variant) are resolved once at
// startup into JournalSettings. The data directory depends on the build
// variant: release builds use "Journal" under the local data root,
// development builds use "Journal-dev". The variant is set at link time
// and can be overridden with the JOURNAL_PROFILE environment variable.
//
// User configuration is a TOML file at <config dir>/journal/config.toml,
// loaded with LoadAppConfig. A missing file is not an error; defaults
// apply.
package configs
