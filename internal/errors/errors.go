package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a class of keychain failure. The set is closed: every
// failure in the key lifecycle is wrapped into exactly one Kind at its
// origin, and nothing propagates raw.
type Kind int

const (
	// KindAccessDenied indicates the OS denied access to the secure store.
	KindAccessDenied Kind = iota
	// KindNotFound indicates the secure store slot has never been written.
	KindNotFound
	// KindStoreError indicates an unclassified secure-store failure.
	KindStoreError
	// KindFileError indicates a key-file read, copy, or delete failure.
	KindFileError
	// KindMigrationError indicates the migration protocol could not complete.
	KindMigrationError
	// KindGenerationError indicates a new secret could not be generated or stored.
	KindGenerationError
	// KindConfigDirNotFound indicates the application data directory could not be resolved.
	KindConfigDirNotFound
)

// String returns a stable diagnostic name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAccessDenied:
		return "access denied"
	case KindNotFound:
		return "key not found"
	case KindStoreError:
		return "keychain error"
	case KindFileError:
		return "file error"
	case KindMigrationError:
		return "migration error"
	case KindGenerationError:
		return "key generation error"
	case KindConfigDirNotFound:
		return "config dir not found"
	default:
		return "unknown"
	}
}

// KeychainError is a classified key-lifecycle failure. Detail carries the
// native error text for diagnostics only; it never reaches the user-facing
// message.
type KeychainError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *KeychainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

func (e *KeychainError) Unwrap() error { return e.Err }

// Is matches any KeychainError of the same kind, so callers can use
// errors.Is against the sentinel values below.
func (e *KeychainError) Is(target error) bool {
	t, ok := target.(*KeychainError)
	return ok && t.Kind == e.Kind
}

// New creates a classified error with a diagnostic detail string.
func New(kind Kind, detail string) *KeychainError {
	return &KeychainError{Kind: kind, Detail: detail}
}

// Wrap creates a classified error around an underlying cause.
func Wrap(kind Kind, err error) *KeychainError {
	if err == nil {
		return &KeychainError{Kind: kind}
	}
	return &KeychainError{Kind: kind, Detail: err.Error(), Err: err}
}

// Sentinel values for errors.Is checks. Matching is by kind, not identity.
var (
	ErrAccessDenied      = &KeychainError{Kind: KindAccessDenied}
	ErrKeyNotFound       = &KeychainError{Kind: KindNotFound}
	ErrStore             = &KeychainError{Kind: KindStoreError}
	ErrFile              = &KeychainError{Kind: KindFileError}
	ErrMigration         = &KeychainError{Kind: KindMigrationError}
	ErrGeneration        = &KeychainError{Kind: KindGenerationError}
	ErrConfigDirNotFound = &KeychainError{Kind: KindConfigDirNotFound}
)

// Storage sentinels used by the encrypted store layer.
var (
	// ErrEntryNotFound indicates the requested journal entry does not exist.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrKeyMismatch indicates the database canary could not be decrypted
	// with the active key.
	ErrKeyMismatch = errors.New("encryption key does not match database")
)

// userMessages maps every kind to its user-facing message. Messages are
// deliberately many-to-one and contain no raw OS error text.
var userMessages = map[Kind]string{
	KindAccessDenied:      "There was a problem accessing the system keychain. Please ensure you have granted the necessary permissions.",
	KindNotFound:          "There was a problem accessing the system keychain. Please ensure you have granted the necessary permissions.",
	KindStoreError:        "There was a problem accessing the system keychain. Please ensure you have granted the necessary permissions.",
	KindFileError:         "There was a problem accessing the application data. Please ensure you have the necessary permissions.",
	KindConfigDirNotFound: "There was a problem accessing the application data. Please ensure you have the necessary permissions.",
	KindMigrationError:    "There was a problem migrating your encryption key. Please try restarting the application.",
	KindGenerationError:   "There was a problem generating a new encryption key. Please try restarting the application.",
}

const genericMessage = "An unexpected error occurred. Please try restarting the application."

// UserMessage renders the stable user-facing message for any error. Errors
// outside the taxonomy get a generic fallback, so the mapping is total.
func UserMessage(err error) string {
	var ke *KeychainError
	if errors.As(err, &ke) {
		if msg, ok := userMessages[ke.Kind]; ok {
			return msg
		}
	}
	return genericMessage
}

// ClassifyStoreError classifies a secure-store failure whose binding exposed
// no structured code. The substring heuristic lives here, behind the
// taxonomy boundary, so orchestration code never inspects error text.
// Callers should map structured binding errors (e.g. the binding's own
// not-found value) before falling back to this.
func ClassifyStoreError(err error) *KeychainError {
	if err == nil {
		return nil
	}
	var ke *KeychainError
	if errors.As(err, &ke) {
		return ke
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "denied"), strings.Contains(msg, "access"), strings.Contains(msg, "permission"):
		return Wrap(KindAccessDenied, err)
	case strings.Contains(msg, "not found"):
		return Wrap(KindNotFound, err)
	default:
		return Wrap(KindStoreError, err)
	}
}
