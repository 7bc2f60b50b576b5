package vaultrec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/YellowKidokc/CloudFlarevector/internal/db"
	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

const (
	// Bucket holds the sealed vault record.
	Bucket    = "vault"
	recordKey = "record"
)

// store is the consumer interface for vault ciphertext (ISP).
type store interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Set(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Repo implements usecase/vault.Repository.
//
// The record ciphertext lives in the database; the encryption key lives in
// a separate file so neither artifact alone recovers the secrets.
type Repo struct {
	store   store
	keyPath string
}

// New creates a vault record repository. keyPath is the key file location.
func New(s store, keyPath string) *Repo {
	return &Repo{store: s, keyPath: keyPath}
}

// Store seals and persists the record, creating key material on first use.
func (r *Repo) Store(ctx context.Context, rec domain.VaultRecord) error {
	key, err := r.ensureKey()
	if err != nil {
		return fmt.Errorf("ensure key: %w", err)
	}

	plaintext, err := json.Marshal(toDTO(rec))
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	blob, err := seal(key, plaintext)
	if err != nil {
		return fmt.Errorf("seal record: %w", err)
	}

	if err := r.store.Set(ctx, Bucket, recordKey, blob); err != nil {
		return fmt.Errorf("store ciphertext: %w", err)
	}
	return nil
}

// Load decrypts and returns the record.
// Returns domain.ErrNotConfigured when no record exists and
// domain.ErrVaultIntegrity when the ciphertext cannot be authenticated
// or the key material is gone.
func (r *Repo) Load(ctx context.Context) (domain.VaultRecord, error) {
	blob, err := r.store.Get(ctx, Bucket, recordKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.VaultRecord{}, domain.ErrNotConfigured
		}
		return domain.VaultRecord{}, fmt.Errorf("load ciphertext: %w", err)
	}

	key, err := os.ReadFile(r.keyPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.VaultRecord{}, fmt.Errorf("%w: key material missing", domain.ErrVaultIntegrity)
		}
		return domain.VaultRecord{}, fmt.Errorf("read key file: %w", err)
	}

	plaintext, err := open(key, blob)
	if err != nil {
		return domain.VaultRecord{}, fmt.Errorf("open record: %w", err)
	}

	var dto recordDTO
	if err := json.Unmarshal(plaintext, &dto); err != nil {
		return domain.VaultRecord{}, fmt.Errorf("%w: unmarshal record: %w", domain.ErrVaultIntegrity, err)
	}
	return fromDTO(dto), nil
}

// Exists reports whether a sealed record is present.
func (r *Repo) Exists(ctx context.Context) (bool, error) {
	found, err := r.store.Exists(ctx, Bucket, recordKey)
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return found, nil
}

// Clear removes both the ciphertext and the key material. Idempotent.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, Bucket, recordKey); err != nil {
		return fmt.Errorf("delete ciphertext: %w", err)
	}
	if err := os.Remove(r.keyPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete key file: %w", err)
	}
	return nil
}

// ensureKey loads the key file, generating it on first use.
func (r *Repo) ensureKey() ([]byte, error) {
	key, err := os.ReadFile(r.keyPath)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key, err = newKey()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.keyPath, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}
