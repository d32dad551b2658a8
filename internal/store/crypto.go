package store

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	kerrors "github.com/seralba/journal/internal/errors"
)

// deriveKey turns the opaque secret into a secretbox key. The secret is
// a UUID string, not raw key material, so it is hashed to 32 bytes.
func deriveKey(secret string) [32]byte {
	return sha256.Sum256([]byte(secret))
}

// seal encrypts plaintext with a fresh random nonce.
func seal(key [32]byte, plaintext []byte) (nonce, ciphertext []byte, err error) {
	var n [24]byte
	if _, err := io.ReadFull(rand.Reader, n[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return n[:], secretbox.Seal(nil, plaintext, &n, &key), nil
}

// unseal decrypts a sealed value. A failed open means the active key does
// not match the key this record was written with.
func unseal(key [32]byte, nonce, ciphertext []byte) ([]byte, error) {
	if len(nonce) != 24 {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}
	var n [24]byte
	copy(n[:], nonce)

	plaintext, ok := secretbox.Open(nil, ciphertext, &n, &key)
	if !ok {
		return nil, kerrors.ErrKeyMismatch
	}
	return plaintext, nil
}
