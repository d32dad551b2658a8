package keychain

import (
	"os"
	"path/filepath"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
)

const keyFileName = "journal.key"

// Locator discovers a key file left over from the prior on-disk storage
// scheme. Two directories are searched: the current build variant's data
// directory and the sibling variant's. Which one is "legacy" swaps with
// the build variant.
type Locator struct {
	CurrentDir   string
	AlternateDir string
}

// NewLocator builds a locator from the resolved application settings.
func NewLocator(settings *configs.Settings) Locator {
	return Locator{
		CurrentDir:   settings.DataDir,
		AlternateDir: settings.AlternateDataDir,
	}
}

// DetectExistingKeyFile returns the path of a legacy key file, or empty
// string when none exists. A file in the current variant's directory
// always wins over one in the alternate directory: it represents this
// runtime's own historical state.
func (l Locator) DetectExistingKeyFile() (string, error) {
	if l.CurrentDir == "" {
		return "", kerrors.New(kerrors.KindConfigDirNotFound, "application data directory is not resolved")
	}

	currentPath := filepath.Join(l.CurrentDir, keyFileName)
	if _, err := os.Stat(currentPath); err == nil {
		return currentPath, nil
	}

	if l.AlternateDir != "" {
		alternatePath := filepath.Join(l.AlternateDir, keyFileName)
		if _, err := os.Stat(alternatePath); err == nil {
			return alternatePath, nil
		}
	}

	return "", nil
}
