// Package errors provides the closed error taxonomy for the journal
// application.
//
// Every keychain, file, and migration failure is wrapped into a
// KeychainError with one of a fixed set of kinds at its origin. Callers
// handle conditions with errors.Is() against the sentinel values rather
// than string matching:
//
//	key, err := manager.GetKey()
//	if errors.Is(err, kerrors.ErrKeyNotFound) {
//	    // first launch, nothing stored yet
//	}
//
// # User-facing messages
//
// UserMessage() maps any error to a stable message with no raw OS error
// text. The mapping is total (unknown errors get a generic fallback) and
// many-to-one: access-denied and generic store failures share a single
// "check permissions" message, because the distinction is not actionable
// for the user. Raw detail is retained on the error itself for
// diagnostic logging only.
//
// # Store error classification
//
// ClassifyStoreError() holds the substring heuristic for secure-store
// bindings that expose no structured error codes. Keeping it here means
// the heuristic can be swapped without touching the key lifecycle logic.
package errors
