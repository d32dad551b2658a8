package keychain

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/seralba/journal/internal/configs"
	kerrors "github.com/seralba/journal/internal/errors"
)

const (
	serviceName = "com.journal.app"
	accountName = "journal_encryption_key"
)

// CredentialStore is the contract over the OS secure-storage primitive:
// get and set a single named secret. Get and Set may trigger an
// interactive consent prompt on some platforms.
type CredentialStore interface {
	Get() (string, error)
	Set(secret string) error
}

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS keyring bound to the fixed service and
// account identity. When cfg selects the "file" backend, secrets are kept
// in an encrypted file instead, which is the only workable option on
// headless systems without a keychain service.
func NewKeyringStore(cfg configs.KeychainConfig) (CredentialStore, error) {
	kc := keyring.Config{
		ServiceName: serviceName,
	}

	if cfg.Backend == "file" {
		fileDir := cfg.FileDir
		if fileDir == "" {
			fileDir = filepath.Join(configs.JournalSettings.DataDir, "keyring")
		}
		kc.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		kc.FileDir = fileDir
		if password := os.Getenv("JOURNAL_KEYRING_FILE_PASSWORD"); password != "" {
			kc.FilePasswordFunc = keyring.FixedStringPrompt(password)
		} else {
			kc.FilePasswordFunc = keyring.TerminalPrompt
		}
	}

	ring, err := keyring.Open(kc)
	if err != nil {
		return nil, kerrors.ClassifyStoreError(err)
	}
	return &keyringStore{ring: ring}, nil
}

func (s *keyringStore) Get() (string, error) {
	item, err := s.ring.Get(accountName)
	if err != nil {
		// The binding exposes a structured value for the never-written
		// case; everything else goes through the taxonomy heuristic.
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", kerrors.Wrap(kerrors.KindNotFound, err)
		}
		return "", kerrors.ClassifyStoreError(err)
	}
	return string(item.Data), nil
}

func (s *keyringStore) Set(secret string) error {
	err := s.ring.Set(keyring.Item{
		Key:   accountName,
		Data:  []byte(secret),
		Label: "Journal encryption key",
	})
	if err != nil {
		return kerrors.ClassifyStoreError(err)
	}
	return nil
}
