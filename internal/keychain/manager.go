package keychain

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
	logger "github.com/seralba/journal/internal/logging"
)

// processCache is the shared write-once cell for all managers opened in
// this process. Tests build managers with their own cache via NewManager.
var processCache = NewCache()

// ResetProcessCache replaces the process-wide secret cache with an empty
// one. For tests that exercise Open against isolated environments.
func ResetProcessCache() {
	processCache = NewCache()
}

// Manager owns the lifecycle of the database encryption key: it finds it
// in the secure store, migrates it out of a legacy key file, or generates
// a fresh one, and caches the result for the rest of the process.
type Manager struct {
	store   CredentialStore
	locator Locator
	cache   *Cache
	logger  logger.Logger

	// mu serializes migration and generation within this process, so
	// concurrent initializers cannot each store an independent secret.
	// Two app processes migrating the same file concurrently remain
	// unguarded; see the package documentation.
	mu sync.Mutex
}

// NewManager constructs a manager over an explicit store, locator, and
// cache. Use Open for the production wiring.
func NewManager(store CredentialStore, locator Locator, cache *Cache, log logger.Logger) *Manager {
	return &Manager{
		store:   store,
		locator: locator,
		cache:   cache,
		logger:  log,
	}
}

// Open builds the default manager: resolved settings, user configuration,
// the OS keyring, and the process-wide secret cache.
func Open(log logger.Logger) (*Manager, error) {
	settings := configs.JournalSettings
	if settings.DataDir == "" {
		return nil, kerrors.New(kerrors.KindConfigDirNotFound, "application data directory could not be resolved")
	}

	config, err := configs.LoadAppConfig()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindFileError, err)
	}

	store, err := NewKeyringStore(config.Keychain)
	if err != nil {
		return nil, err
	}

	return NewManager(store, NewLocator(settings), processCache, log), nil
}

// GetKey returns the active secret, consulting the process cache before
// the secure store. The first successful store read fills the cache.
func (m *Manager) GetKey() (string, error) {
	if key, ok := m.cache.Get(); ok {
		m.logger.Debugf("retrieved key from in-memory cache")
		return key, nil
	}

	key, err := m.store.Get()
	if err != nil {
		return "", err
	}
	m.logger.Debugf("retrieved key from secure store")

	if !m.cache.SetIfAbsent(key) {
		// A concurrent caller won the race; everyone observes its value.
		if cached, ok := m.cache.Get(); ok {
			return cached, nil
		}
	}
	return key, nil
}

// GenerateAndStoreNewKey creates a fresh random secret, stores it in the
// secure store, and caches it. Used directly by the store opener when it
// has to re-derive a key.
func (m *Manager) GenerateAndStoreNewKey() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateLocked()
}

func (m *Manager) generateLocked() (string, error) {
	m.logger.Debugf("generating new encryption key")

	id, err := uuid.NewRandom()
	if err != nil {
		return "", kerrors.Wrap(kerrors.KindGenerationError, err)
	}
	newKey := id.String()

	if err := m.store.Set(newKey); err != nil {
		return "", err
	}
	m.logger.Infof("stored new key in secure store")

	m.cache.SetIfAbsent(newKey)
	return newKey, nil
}

// InitializeKey gets or creates the active secret, migrating a legacy key
// file inline when one exists. This is the entry point for callers that
// need the secret value itself, such as the store opener.
func (m *Manager) InitializeKey() (string, error) {
	key, err := m.GetKey()
	if err == nil {
		// The key is safely in the store; a leftover key file is now
		// redundant. Cleanup failure is not fatal.
		if cerr := m.CleanupStaleKeyFile(); cerr != nil {
			m.logger.Warnf("failed to clean up stale key file: %v", cerr)
		}
		return key, nil
	}

	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		// AccessDenied and opaque store failures are fatal to key
		// initialization; surface them, never retry the prompt.
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A concurrent initializer may have finished while we waited.
	if key, ok := m.cache.Get(); ok {
		return key, nil
	}

	m.logger.Debugf("key not found in secure store, checking for legacy key file")
	path, err := m.locator.DetectExistingKeyFile()
	if err != nil {
		return "", err
	}

	if path != "" {
		m.logger.Debugf("migrating legacy key file: %s", path)
		if err := m.migrateLocked(path); err != nil {
			return "", err
		}
		if cerr := m.CleanupStaleKeyFile(); cerr != nil {
			m.logger.Warnf("failed to clean up stale key file: %v", cerr)
		}
		return m.GetKey()
	}

	m.logger.Debugf("no legacy key file, generating new key")
	key, err = m.generateLocked()
	if err != nil {
		return "", err
	}
	if cerr := m.CleanupStaleKeyFile(); cerr != nil {
		m.logger.Warnf("failed to clean up stale key file: %v", cerr)
	}
	return key, nil
}

// Authorize ensures a secret is available and cached while prompting the
// user at most once, without returning the secret. Any legacy key file is
// deliberately left in place on the fast paths: the database may still
// depend on it, so cleanup belongs to the caller once the store has
// opened successfully.
func (m *Manager) Authorize() error {
	if _, ok := m.cache.Get(); ok {
		return nil
	}

	_, err := m.GetKey()
	if err == nil {
		return nil
	}

	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cache.Get(); ok {
		return nil
	}

	path, err := m.locator.DetectExistingKeyFile()
	if err != nil {
		return err
	}

	if path != "" {
		if err := m.migrateLocked(path); err != nil {
			return err
		}
		if err := m.CleanupStaleKeyFile(); err != nil {
			return err
		}
		_, err = m.GetKey()
		return err
	}

	if _, err := m.generateLocked(); err != nil {
		return err
	}
	return m.CleanupStaleKeyFile()
}

// DetectExistingKeyFile reports a legacy on-disk key file, preferring the
// current build variant's directory. Exposed so the store opener can
// attempt a last-chance migration after a decrypt mismatch.
func (m *Manager) DetectExistingKeyFile() (string, error) {
	return m.locator.DetectExistingKeyFile()
}

// MigrateExistingKey moves the secret from the legacy key file at path
// into the secure store and deletes the file, with a sidecar backup as
// the undo mechanism for every destructive step.
func (m *Manager) MigrateExistingKey(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.migrateLocked(path)
}

func (m *Manager) migrateLocked(path string) error {
	// Raced with another cleanup; nothing to migrate.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		m.logger.Debugf("key file already gone: %s", path)
		return nil
	}

	backupPath, err := Backup(path)
	if err != nil {
		// Nothing destructive has happened yet, so no recovery needed.
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return m.failMigration(path, kerrors.Wrap(kerrors.KindFileError, err))
	}
	secret := string(data)

	if err := m.store.Set(secret); err != nil {
		return m.failMigration(path, err)
	}
	m.logger.Debugf("stored migrated key in secure store")

	if err := os.Remove(path); err != nil {
		// The secret is already durably in the store. Restoring the file
		// anyway prefers "both copies exist" over "file gone, store state
		// uncertain", at the cost of a stale file reappearing until the
		// next cleanup.
		return m.failMigration(path, kerrors.Wrap(kerrors.KindFileError, err))
	}

	if err := os.Remove(backupPath); err != nil {
		// Migration is already complete and correct.
		m.logger.Warnf("failed to clean up backup file: %v", err)
	}

	m.cache.SetIfAbsent(secret)
	m.logger.Infof("migrated key to secure store and removed key file")
	return nil
}

// failMigration runs the recovery step for a failed migration and returns
// the original error. A recovery failure compounds into the returned
// detail but never replaces the original cause.
func (m *Manager) failMigration(path string, cause error) error {
	if rerr := Recover(path); rerr != nil {
		m.logger.Errorf("recovery after failed migration also failed: %v", rerr)
		var ke *kerrors.KeychainError
		if errors.As(cause, &ke) {
			return &kerrors.KeychainError{
				Kind:   ke.Kind,
				Detail: fmt.Sprintf("%s (recovery also failed: %v)", ke.Detail, rerr),
				Err:    ke.Err,
			}
		}
		return cause
	}
	m.logger.Debugf("restored key file from backup after failed migration")
	return cause
}

// CleanupStaleKeyFile deletes any leftover on-disk key file once the key
// is safely in the secure store. It is a no-op if no file is found.
func (m *Manager) CleanupStaleKeyFile() error {
	path, err := m.locator.DetectExistingKeyFile()
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	m.logger.Debugf("deleting stale key file: %s", path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return kerrors.Wrap(kerrors.KindFileError, err)
	}
	return nil
}
