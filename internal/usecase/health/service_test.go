package health

import (
	"context"
	"errors"
	"testing"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type mockVaultChecker struct {
	exists    bool
	existsErr error
	loadErr   error
}

func (m *mockVaultChecker) Exists(_ context.Context) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockVaultChecker) Load(_ context.Context) (domain.VaultRecord, error) {
	if m.loadErr != nil {
		return domain.VaultRecord{}, m.loadErr
	}
	return domain.ReconstructVaultRecord("https://milvus.local", "k", "c", "i"), nil
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockVaultChecker{exists: true}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["vault"] != CheckOK {
		t.Errorf("expected vault %q, got %q", CheckOK, r.Checks["vault"])
	}
	if r.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks["embedding"])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockVaultChecker{}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks["embedding"])
	}
}

func TestCheck_EmbeddingError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockVaultChecker{}, &mockEmbeddingChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks["embedding"])
	}
}

func TestCheck_VaultAbsentIsHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockVaultChecker{exists: false}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["vault"] != CheckOK {
		t.Errorf("expected vault %q, got %q", CheckOK, r.Checks["vault"])
	}
}

func TestCheck_VaultUnreadable(t *testing.T) {
	svc := New(
		&mockDBPinger{},
		&mockVaultChecker{exists: true, loadErr: domain.ErrVaultIntegrity},
		&mockEmbeddingChecker{},
	)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["vault"] != CheckError {
		t.Errorf("expected vault %q, got %q", CheckError, r.Checks["vault"])
	}
}

func TestCheck_VaultResetRace(t *testing.T) {
	// The record disappeared between Exists and Load; still healthy.
	svc := New(
		&mockDBPinger{},
		&mockVaultChecker{exists: true, loadErr: domain.ErrNotConfigured},
		&mockEmbeddingChecker{},
	)
	r := svc.Check(context.Background())

	if r.Checks["vault"] != CheckOK {
		t.Errorf("expected vault %q, got %q", CheckOK, r.Checks["vault"])
	}
}

func TestCheck_NoEmbedding(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockVaultChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
}
