package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	logger "github.com/seralba/journal/internal/logging"
)

// fakeCredentials is an in-memory keychain.CredentialStore standing in
// for the OS keyring.
type fakeCredentials struct {
	mu     sync.Mutex
	secret string
	has    bool
}

func (f *fakeCredentials) Get() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.has {
		return "", kerrors.New(kerrors.KindNotFound, "no secret stored")
	}
	return f.secret, nil
}

func (f *fakeCredentials) Set(secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secret = secret
	f.has = true
	return nil
}

func newTestManager(t *testing.T, creds *fakeCredentials, keyFileDir string) *keychain.Manager {
	t.Helper()
	locator := keychain.Locator{
		CurrentDir:   keyFileDir,
		AlternateDir: t.TempDir(),
	}
	return keychain.NewManager(creds, locator, keychain.NewCache(), logger.Logger{})
}

func TestOpenFreshDatabase(t *testing.T) {
	ctx := context.Background()
	creds := &fakeCredentials{}
	manager := newTestManager(t, creds, t.TempDir())
	opts := Options{DataDir: t.TempDir()}

	s, err := Open(ctx, manager, opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if !creds.has {
		t.Error("Opening a fresh database should have stored a generated secret")
	}

	entry, err := s.CreateEntry(ctx)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := s.SaveEntry(ctx, entry.ID, "First entry", "Hello, journal."); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	loaded, err := s.Entry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if loaded.Title != "First entry" || loaded.Body != "Hello, journal." {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestReopenWithSameKey(t *testing.T) {
	ctx := context.Background()
	creds := &fakeCredentials{}
	dataDir := t.TempDir()
	opts := Options{DataDir: dataDir}

	s, err := Open(ctx, newTestManager(t, creds, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("First Open failed: %v", err)
	}
	entry, err := s.CreateEntry(ctx)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := s.SaveEntry(ctx, entry.ID, "Persisted", "Across restarts"); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A new manager with a cold cache simulates a process restart.
	s, err = Open(ctx, newTestManager(t, creds, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	loaded, err := s.Entry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Entry after reopen failed: %v", err)
	}
	if loaded.Title != "Persisted" {
		t.Errorf("Expected persisted entry, got %+v", loaded)
	}
}

func TestOpenMigratesLegacyKeyFile(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	opts := Options{DataDir: dataDir}

	// Seed a database written under the legacy file-based key scheme.
	seed := &fakeCredentials{secret: "file-secret", has: true}
	s, err := Open(ctx, newTestManager(t, seed, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Seed Open failed: %v", err)
	}
	entry, err := s.CreateEntry(ctx)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := s.SaveEntry(ctx, entry.ID, "Old data", "written before migration"); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// New install state: empty keyring, key only on disk.
	keyFileDir := t.TempDir()
	keyFile := filepath.Join(keyFileDir, "journal.key")
	if err := os.WriteFile(keyFile, []byte("file-secret"), 0600); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	creds := &fakeCredentials{}

	s, err = Open(ctx, newTestManager(t, creds, keyFileDir), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Open with legacy key file failed: %v", err)
	}
	defer s.Close()

	if creds.secret != "file-secret" {
		t.Errorf("Keyring holds %q after migration, want %q", creds.secret, "file-secret")
	}
	if _, err := os.Stat(keyFile); !os.IsNotExist(err) {
		t.Error("Legacy key file should be gone after open")
	}

	loaded, err := s.Entry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Entry after migration failed: %v", err)
	}
	if loaded.Title != "Old data" {
		t.Errorf("Expected migrated data to remain readable, got %+v", loaded)
	}
}

func TestOpenKeyMismatchFailsClosed(t *testing.T) {
	ctx := context.Background()
	opts := Options{DataDir: t.TempDir()}

	seed := &fakeCredentials{secret: "key-a", has: true}
	s, err := Open(ctx, newTestManager(t, seed, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Seed Open failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	wrong := &fakeCredentials{secret: "key-b", has: true}
	_, err = Open(ctx, newTestManager(t, wrong, t.TempDir()), opts, logger.Logger{})
	if !errors.Is(err, kerrors.ErrKeyMismatch) {
		t.Fatalf("Expected key mismatch, got %v", err)
	}
}

func TestOpenKeyMismatchRepairsStoreForNextRun(t *testing.T) {
	ctx := context.Background()
	opts := Options{DataDir: t.TempDir()}

	seed := &fakeCredentials{secret: "db-key", has: true}
	s, err := Open(ctx, newTestManager(t, seed, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Seed Open failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// The keyring holds a different key, but a legacy file still has the
	// one the database was written with.
	keyFileDir := t.TempDir()
	keyFile := filepath.Join(keyFileDir, "journal.key")
	if err := os.WriteFile(keyFile, []byte("db-key"), 0600); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	creds := &fakeCredentials{secret: "stray-key", has: true}

	// This run fails: the process cache pins the stray key for its
	// lifetime. But the last-chance migration repairs the keyring.
	_, err = Open(ctx, newTestManager(t, creds, keyFileDir), opts, logger.Logger{})
	if !errors.Is(err, kerrors.ErrKeyMismatch) {
		t.Fatalf("Expected key mismatch in the poisoned run, got %v", err)
	}
	if creds.secret != "db-key" {
		t.Errorf("Keyring holds %q after last-chance migration, want %q", creds.secret, "db-key")
	}

	// A restart (fresh manager, cold cache) now opens cleanly.
	s, err = Open(ctx, newTestManager(t, creds, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Open after repair failed: %v", err)
	}
	defer s.Close()
}

func TestOpenKeyMismatchDestructiveReset(t *testing.T) {
	ctx := context.Background()
	opts := Options{DataDir: t.TempDir()}

	seed := &fakeCredentials{secret: "key-a", has: true}
	s, err := Open(ctx, newTestManager(t, seed, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Seed Open failed: %v", err)
	}
	entry, err := s.CreateEntry(ctx)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	wrong := &fakeCredentials{secret: "key-b", has: true}
	opts.AllowDestructiveReset = true
	s, err = Open(ctx, newTestManager(t, wrong, t.TempDir()), opts, logger.Logger{})
	if err != nil {
		t.Fatalf("Open with destructive reset failed: %v", err)
	}
	defer s.Close()

	// The old contents are gone and the store is usable under the new key.
	if _, err := s.Entry(ctx, entry.ID); !errors.Is(err, kerrors.ErrEntryNotFound) {
		t.Errorf("Expected old entry to be gone after reset, got %v", err)
	}
	fresh, err := s.CreateEntry(ctx)
	if err != nil {
		t.Fatalf("CreateEntry after reset failed: %v", err)
	}
	if err := s.SaveEntry(ctx, fresh.ID, "New start", ""); err != nil {
		t.Fatalf("SaveEntry after reset failed: %v", err)
	}
}
