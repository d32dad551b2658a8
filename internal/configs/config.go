package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig is the user-editable configuration stored at
// <ConfigsPath>/config.toml.
type AppConfig struct {
	Keychain KeychainConfig `toml:"keychain"`
}

// KeychainConfig controls how the encryption key is stored and recovered.
type KeychainConfig struct {
	// Backend selects the secure-store backend. Empty or "auto" uses the
	// platform default; "file" uses an encrypted file under FileDir, which
	// is the only option on headless systems without a keychain service.
	Backend string `toml:"backend"`

	// FileDir is the directory for the "file" backend. Defaults to
	// <DataDir>/keyring when empty.
	FileDir string `toml:"file_dir"`

	// AllowDestructiveReset permits the store opener to discard an
	// undecryptable database after every key-recovery path has failed.
	// Off by default: losing data is worse than refusing to start.
	AllowDestructiveReset bool `toml:"allow_destructive_reset"`
}

// LoadAppConfig loads the application configuration from the config file.
// A missing file yields the default configuration.
func LoadAppConfig() (*AppConfig, error) {
	configPath := filepath.Join(JournalSettings.ConfigsPath, "config.toml")

	config := &AppConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	return config, nil
}

// SaveAppConfig saves the application configuration to the config file.
func SaveAppConfig(config *AppConfig) error {
	configPath := filepath.Join(JournalSettings.ConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save app config: %w", err)
	}

	return nil
}
