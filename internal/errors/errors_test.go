package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserMessageTotality(t *testing.T) {
	kinds := []Kind{
		KindAccessDenied,
		KindNotFound,
		KindStoreError,
		KindFileError,
		KindMigrationError,
		KindGenerationError,
		KindConfigDirNotFound,
	}

	for _, kind := range kinds {
		detail := "raw OS detail: errno 13"
		msg := UserMessage(New(kind, detail))
		if msg == "" {
			t.Errorf("Kind %v has no user message", kind)
		}
		if strings.Contains(msg, detail) {
			t.Errorf("Kind %v leaks raw detail into user message: %q", kind, msg)
		}
	}
}

func TestUserMessageFallback(t *testing.T) {
	msg := UserMessage(stderrors.New("something else entirely"))
	if msg != genericMessage {
		t.Errorf("Expected generic fallback, got %q", msg)
	}

	if UserMessage(nil) != genericMessage {
		t.Error("Expected generic fallback for nil error")
	}
}

func TestAccessDeniedAndStoreShareMessage(t *testing.T) {
	denied := UserMessage(New(KindAccessDenied, "denied"))
	store := UserMessage(New(KindStoreError, "dbus timeout"))
	if denied != store {
		t.Errorf("AccessDenied and StoreError should share a message: %q vs %q", denied, store)
	}
}

func TestSentinelMatching(t *testing.T) {
	err := Wrap(KindNotFound, stderrors.New("The specified item could not be found"))
	if !stderrors.Is(err, ErrKeyNotFound) {
		t.Error("Wrapped NotFound error should match ErrKeyNotFound")
	}
	if stderrors.Is(err, ErrAccessDenied) {
		t.Error("NotFound error must not match ErrAccessDenied")
	}

	// Matching survives further wrapping with %w.
	wrapped := fmt.Errorf("initializing key: %w", err)
	if !stderrors.Is(wrapped, ErrKeyNotFound) {
		t.Error("fmt-wrapped error should still match ErrKeyNotFound")
	}
}

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"denied", stderrors.New("user interaction Denied by policy"), KindAccessDenied},
		{"access", stderrors.New("cannot Access keychain item"), KindAccessDenied},
		{"permission", stderrors.New("insufficient permission"), KindAccessDenied},
		{"not found", stderrors.New("secret Not Found in collection"), KindNotFound},
		{"opaque", stderrors.New("dbus: connection closed"), KindStoreError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStoreError(tt.err)
			if got.Kind != tt.want {
				t.Errorf("ClassifyStoreError(%q) = %v, want %v", tt.err, got.Kind, tt.want)
			}
			if got.Detail == "" {
				t.Error("Classification should retain the native detail")
			}
		})
	}
}

func TestClassifyStoreErrorPassthrough(t *testing.T) {
	// Already-classified errors keep their kind even if the text would
	// classify differently.
	orig := Wrap(KindNotFound, stderrors.New("access something"))
	got := ClassifyStoreError(fmt.Errorf("store read: %w", orig))
	if got.Kind != KindNotFound {
		t.Errorf("Expected passthrough of existing classification, got %v", got.Kind)
	}

	if ClassifyStoreError(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
