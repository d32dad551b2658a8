package keychain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
)

func TestDetectExistingKeyFilePriority(t *testing.T) {
	locator := Locator{
		CurrentDir:   t.TempDir(),
		AlternateDir: t.TempDir(),
	}

	// When both variants hold a key file, the current variant wins.
	currentPath := writeKeyFile(t, locator.CurrentDir, "current")
	writeKeyFile(t, locator.AlternateDir, "alternate")

	path, err := locator.DetectExistingKeyFile()
	if err != nil {
		t.Fatalf("DetectExistingKeyFile failed: %v", err)
	}
	if path != currentPath {
		t.Errorf("Expected current-variant path %s, got %s", currentPath, path)
	}
}

func TestDetectExistingKeyFileAlternateOnly(t *testing.T) {
	locator := Locator{
		CurrentDir:   t.TempDir(),
		AlternateDir: t.TempDir(),
	}
	alternatePath := writeKeyFile(t, locator.AlternateDir, "alternate")

	path, err := locator.DetectExistingKeyFile()
	if err != nil {
		t.Fatalf("DetectExistingKeyFile failed: %v", err)
	}
	if path != alternatePath {
		t.Errorf("Expected alternate-variant path %s, got %s", alternatePath, path)
	}
}

func TestDetectExistingKeyFileNone(t *testing.T) {
	locator := Locator{
		CurrentDir:   t.TempDir(),
		AlternateDir: t.TempDir(),
	}

	path, err := locator.DetectExistingKeyFile()
	if err != nil {
		t.Fatalf("DetectExistingKeyFile failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no key file, got %s", path)
	}
}

func TestDetectExistingKeyFileUnresolvedDir(t *testing.T) {
	locator := Locator{}

	_, err := locator.DetectExistingKeyFile()
	if !errors.Is(err, kerrors.ErrConfigDirNotFound) {
		t.Errorf("Expected config-dir error for unresolved settings, got %v", err)
	}
}

func TestNewLocatorUsesSettings(t *testing.T) {
	settings := &configs.Settings{
		DataDir:          filepath.Join(t.TempDir(), "Journal-dev"),
		AlternateDataDir: filepath.Join(t.TempDir(), "Journal"),
	}

	locator := NewLocator(settings)
	if locator.CurrentDir != settings.DataDir {
		t.Errorf("Expected current dir %s, got %s", settings.DataDir, locator.CurrentDir)
	}
	if locator.AlternateDir != settings.AlternateDataDir {
		t.Errorf("Expected alternate dir %s, got %s", settings.AlternateDataDir, locator.AlternateDir)
	}

	// Missing directories simply report no key file.
	if err := os.RemoveAll(settings.DataDir); err != nil {
		t.Fatalf("Failed to remove dir: %v", err)
	}
	path, err := locator.DetectExistingKeyFile()
	if err != nil {
		t.Fatalf("DetectExistingKeyFile failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no key file under missing dirs, got %s", path)
	}
}
