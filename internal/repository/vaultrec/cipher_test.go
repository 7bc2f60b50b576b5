package vaultrec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}
	plaintext := []byte(`{"endpoint_url":"https://m.example.com"}`)

	blob, err := seal(key, plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(blob, plaintext) {
		t.Error("ciphertext must not contain plaintext")
	}

	got, err := open(key, blob)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestSeal_NonceVaries(t *testing.T) {
	key, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}

	a, err := seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	b, err := seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("expected distinct ciphertexts for the same plaintext")
	}
}

func TestOpen_Tampered(t *testing.T) {
	key, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}
	blob, err := seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	blob[0] ^= 0x01
	if _, err := open(key, blob); !errors.Is(err, domain.ErrVaultIntegrity) {
		t.Errorf("expected ErrVaultIntegrity, got %v", err)
	}
}

func TestOpen_Truncated(t *testing.T) {
	key, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}

	if _, err := open(key, []byte("short")); !errors.Is(err, domain.ErrVaultIntegrity) {
		t.Errorf("expected ErrVaultIntegrity for truncated blob, got %v", err)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	key1, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}
	key2, err := newKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}

	blob, err := seal(key1, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := open(key2, blob); !errors.Is(err, domain.ErrVaultIntegrity) {
		t.Errorf("expected ErrVaultIntegrity with wrong key, got %v", err)
	}
}
