package keychain

import (
	"os"

	kerrors "github.com/seralba/journal/internal/errors"
)

const backupSuffix = ".backup"

// BackupPath returns the sidecar backup path for a key file.
func BackupPath(path string) string {
	return path + backupSuffix
}

// Backup copies the key file to its sidecar backup path before a
// destructive migration step. Returns the backup path.
func Backup(path string) (string, error) {
	backupPath := BackupPath(path)
	if err := copyFile(path, backupPath); err != nil {
		return "", kerrors.Wrap(kerrors.KindFileError, err)
	}
	return backupPath, nil
}

// Restore copies backup content back over the original location.
func Restore(backupPath, originalPath string) error {
	if err := copyFile(backupPath, originalPath); err != nil {
		return kerrors.Wrap(kerrors.KindFileError, err)
	}
	return nil
}

// Recover rolls back a failed migration: it restores the original file
// from its sidecar backup, then removes the backup. When no backup
// exists there is nothing to roll back to, which callers must surface as
// an unrecoverable migration failure.
func Recover(originalPath string) error {
	backupPath := BackupPath(originalPath)
	if _, err := os.Stat(backupPath); err != nil {
		return kerrors.New(kerrors.KindMigrationError, "no backup available for recovery")
	}

	if err := Restore(backupPath, originalPath); err != nil {
		return err
	}

	if err := os.Remove(backupPath); err != nil {
		return kerrors.Wrap(kerrors.KindFileError, err)
	}

	return nil
}

// copyFile copies a single file. Key material is always written 0600.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}
