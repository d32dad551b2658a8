package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	kerrors "github.com/seralba/journal/internal/errors"
	"github.com/seralba/journal/internal/keychain"
	logger "github.com/seralba/journal/internal/logging"
)

const dbFileName = "journal.db"

// canaryValue is sealed with the active key when the database is created.
// Failing to unseal it on a later open means the key and the database
// have diverged.
const canaryValue = "journal-canary-v1"

type metaRecord struct {
	bun.BaseModel `bun:"table:journal_meta"`

	Name   string `bun:",pk"`
	Nonce  []byte `bun:",notnull"`
	Cipher []byte `bun:",notnull"`
}

// Store is the encrypted journal database. Record contents are sealed
// per-row with a key derived from the lifecycle manager's secret.
type Store struct {
	db     *bun.DB
	key    [32]byte
	dbPath string
	logger logger.Logger
}

// Options controls how the store is opened.
type Options struct {
	// DataDir is the application data directory holding journal.db.
	DataDir string

	// AllowDestructiveReset permits discarding an undecryptable database
	// after every key-recovery path has failed. Runtime-configurable so
	// the lenient path stays testable.
	AllowDestructiveReset bool
}

// Open acquires the encryption key from the manager and opens the
// database. When the database cannot be decrypted with the active key,
// it attempts one last-chance migration of a legacy key file before
// giving up (or, when allowed, resetting the database).
//
// Authorize is used instead of InitializeKey because it leaves any
// legacy key file in place; the database may still be encrypted with
// that file's key, so the file is only cleaned up here, once the open
// has succeeded.
func Open(ctx context.Context, manager *keychain.Manager, opts Options, log logger.Logger) (*Store, error) {
	if err := manager.Authorize(); err != nil {
		return nil, err
	}
	secret, err := manager.GetKey()
	if err != nil {
		return nil, err
	}

	s, err := openWithSecret(ctx, secret, opts, log)
	if err == nil {
		if cerr := manager.CleanupStaleKeyFile(); cerr != nil {
			log.Warnf("failed to clean up stale key file: %v", cerr)
		}
		return s, nil
	}
	if !errors.Is(err, kerrors.ErrKeyMismatch) {
		return nil, err
	}

	log.Warnf("database canary failed with the active key, attempting key-file recovery")

	// Last chance: a legacy key file may hold the key this database was
	// written with. Migrating it fixes the store durably even when the
	// in-process cache still pins the old value for this run.
	if path, derr := manager.DetectExistingKeyFile(); derr == nil && path != "" {
		if merr := manager.MigrateExistingKey(path); merr != nil {
			log.Warnf("last-chance key migration failed: %v", merr)
		} else if recovered, gerr := manager.GetKey(); gerr == nil {
			if s, rerr := openWithSecret(ctx, recovered, opts, log); rerr == nil {
				log.Infof("database opened with recovered key")
				return s, nil
			}
		}
	}

	if !opts.AllowDestructiveReset {
		return nil, err
	}

	log.Warnf("resetting undecryptable database (allow_destructive_reset is on)")
	s, err = openWithSecret(ctx, secret, opts, log)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, kerrors.ErrKeyMismatch) {
		return nil, err
	}
	return resetAndOpen(ctx, secret, opts, log)
}

// openWithSecret opens the database and verifies the canary against the
// given secret.
func openWithSecret(ctx context.Context, secret string, opts Options, log logger.Logger) (*Store, error) {
	if opts.DataDir == "" {
		return nil, kerrors.New(kerrors.KindConfigDirNotFound, "application data directory could not be resolved")
	}
	if err := os.MkdirAll(opts.DataDir, 0700); err != nil {
		return nil, kerrors.Wrap(kerrors.KindFileError, err)
	}

	dbPath := filepath.Join(opts.DataDir, dbFileName)
	sqldb, err := sql.Open(sqliteshim.ShimName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	s := &Store{
		db:     db,
		key:    deriveKey(secret),
		dbPath: dbPath,
		logger: log,
	}

	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// init creates the schema and verifies (or seeds) the canary.
func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*entryRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*metaRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create meta table: %w", err)
	}

	var canary metaRecord
	err := s.db.NewSelect().Model(&canary).Where("name = ?", "canary").Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read canary: %w", err)
		}
		return s.writeCanary(ctx)
	}

	plaintext, err := unseal(s.key, canary.Nonce, canary.Cipher)
	if err != nil {
		return err
	}
	if string(plaintext) != canaryValue {
		return kerrors.ErrKeyMismatch
	}
	return nil
}

func (s *Store) writeCanary(ctx context.Context) error {
	nonce, cipher, err := seal(s.key, []byte(canaryValue))
	if err != nil {
		return err
	}
	record := &metaRecord{Name: "canary", Nonce: nonce, Cipher: cipher}
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return fmt.Errorf("failed to write canary: %w", err)
	}
	return nil
}

// resetAndOpen discards all rows and reseeds the canary with the active
// key. Only reachable when AllowDestructiveReset is set.
func resetAndOpen(ctx context.Context, secret string, opts Options, log logger.Logger) (*Store, error) {
	dbPath := filepath.Join(opts.DataDir, dbFileName)
	sqldb, err := sql.Open(sqliteshim.ShimName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewDropTable().Model((*entryRecord)(nil)).IfExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reset entries: %w", err)
	}
	if _, err := db.NewDropTable().Model((*metaRecord)(nil)).IfExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reset metadata: %w", err)
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database during reset: %w", err)
	}

	return openWithSecret(ctx, secret, opts, log)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DatabasePath returns the path of the underlying database file.
func (s *Store) DatabasePath() string {
	return s.dbPath
}
