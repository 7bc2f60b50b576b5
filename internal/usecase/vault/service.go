// Package vault manages the singleton encrypted credential record.
//
// A process-wide RWMutex serializes writers against readers so a reset can
// never interleave with a reveal and hand out half-deleted credentials.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// Service handles vault setup, status, reset and credential reveal.
type Service struct {
	mu   sync.RWMutex
	repo Repository
}

// New creates a vault service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Setup encrypts and stores the record, replacing any prior one, and
// returns the public status view. The record arrives already validated.
func (s *Service) Setup(ctx context.Context, rec domain.VaultRecord) (domain.VaultStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Store(ctx, rec); err != nil {
		return domain.VaultStatus{}, fmt.Errorf("store vault record: %w", err)
	}
	return domain.StatusFor(rec), nil
}

// Status reports whether the vault is configured. It never exposes the
// API key; an absent record is not an error.
func (s *Service) Status(ctx context.Context) (domain.VaultStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrNotConfigured) {
		return domain.VaultStatus{}, nil
	}
	if err != nil {
		return domain.VaultStatus{}, fmt.Errorf("load vault record: %w", err)
	}
	return domain.StatusFor(rec), nil
}

// Reset removes the record and its key material. Resetting an already
// empty vault is a no-op.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear vault: %w", err)
	}
	return nil
}

// Reveal decrypts and returns the full record for one ingestion pass.
// Fails with domain.ErrNotConfigured when no record exists.
func (s *Service) Reveal(ctx context.Context) (domain.VaultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.repo.Load(ctx)
	if err != nil {
		return domain.VaultRecord{}, fmt.Errorf("load vault record: %w", err)
	}
	return rec, nil
}
