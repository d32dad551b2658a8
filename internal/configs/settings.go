package configs

import (
	"os"
	"path/filepath"

	kerrors "github.com/seralba/journal/internal/errors"
)

// buildProfile is injected at link time via
// `-ldflags "-X github.com/seralba/journal/internal/configs.buildProfile=release"`.
// It is empty for local or development builds.
var buildProfile string

const (
	// ProfileRelease is the shipped build variant.
	ProfileRelease = "release"
	// ProfileDev is the default variant for local builds.
	ProfileDev = "dev"

	releaseFolderName = "Journal"
	devFolderName     = "Journal-dev"
)

type Settings struct {
	// DataDir is the application data directory for the current build
	// variant. The database and any legacy key file live here.
	DataDir string

	// AlternateDataDir is the sibling build variant's data directory. A
	// legacy key file may have been left there by a run of the other
	// variant.
	AlternateDataDir string

	// ConfigsPath is the directory holding config.toml.
	ConfigsPath string

	// Profile is the active build variant, ProfileRelease or ProfileDev.
	Profile string
}

var JournalSettings *Settings

func init() {
	settings, err := ResolveSettings()
	if err != nil {
		// Leave the paths empty so commands surface the resolution
		// failure on first use instead of crashing at import time.
		JournalSettings = &Settings{Profile: ActiveProfile()}
		return
	}
	JournalSettings = settings
}

// ActiveProfile returns the build variant, preferring the JOURNAL_PROFILE
// environment variable over the link-time value.
func ActiveProfile() string {
	if p := os.Getenv("JOURNAL_PROFILE"); p == ProfileRelease || p == ProfileDev {
		return p
	}
	if buildProfile == ProfileRelease {
		return ProfileRelease
	}
	return ProfileDev
}

// ResolveSettings resolves the OS-appropriate directories for the active
// build variant.
func ResolveSettings() (*Settings, error) {
	dataRoot, err := localDataDir()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindConfigDirNotFound, err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindConfigDirNotFound, err)
	}

	profile := ActiveProfile()
	current, alternate := releaseFolderName, devFolderName
	if profile == ProfileDev {
		current, alternate = devFolderName, releaseFolderName
	}

	return &Settings{
		DataDir:          filepath.Join(dataRoot, current),
		AlternateDataDir: filepath.Join(dataRoot, alternate),
		ConfigsPath:      filepath.Join(configDir, "journal"),
		Profile:          profile,
	}, nil
}

// localDataDir returns the root for per-user application data.
func localDataDir() (string, error) {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return dataDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share"), nil
}
