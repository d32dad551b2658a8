package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/seralba/journal/internal/errors"
)

// ExportDatabase copies the database file into destDir under a
// timestamped name and returns the destination path. The copy stays
// encrypted; the key never leaves the secure store.
func ExportDatabase(dataDir, destDir string) (string, error) {
	dbPath := filepath.Join(dataDir, dbFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return "", kerrors.Wrap(kerrors.KindFileError, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	destPath := filepath.Join(destDir, fmt.Sprintf("journal_export_%s.db", timestamp))

	if err := copyFile(dbPath, destPath); err != nil {
		return "", kerrors.Wrap(kerrors.KindFileError, err)
	}
	return destPath, nil
}

// ImportDatabase replaces the database with the file at srcPath. Any
// existing database is kept as a .backup sidecar first, so a bad import
// can be undone by hand.
func ImportDatabase(dataDir, srcPath string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return kerrors.Wrap(kerrors.KindFileError, err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	if _, err := os.Stat(dbPath); err == nil {
		if err := copyFile(dbPath, dbPath+".backup"); err != nil {
			return kerrors.Wrap(kerrors.KindFileError, err)
		}
	}

	if err := copyFile(srcPath, dbPath); err != nil {
		return kerrors.Wrap(kerrors.KindFileError, err)
	}
	return nil
}

// copyFile copies a single file, preserving the source mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode())
}
