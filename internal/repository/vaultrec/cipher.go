package vaultrec

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// seal encrypts plaintext with XChaCha20-Poly1305 under key.
// The random nonce is prepended to the ciphertext.
func seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts a seal()-produced blob. Any tampering with the nonce,
// ciphertext or authentication tag fails with ErrVaultIntegrity.
func open(key, blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: ciphertext truncated", domain.ErrVaultIntegrity)
	}
	nonce, ciphertext := blob[:chacha20poly1305.NonceSizeX], blob[chacha20poly1305.NonceSizeX:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVaultIntegrity, err)
	}
	return plaintext, nil
}

// newKey generates a random 256-bit key.
func newKey() ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}
