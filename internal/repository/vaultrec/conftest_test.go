package vaultrec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/YellowKidokc/CloudFlarevector/internal/db"
	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// mockStore is a map-backed fake of the consumer interface.
type mockStore struct {
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[bucket+"/"+key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, bucket, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[bucket+"/"+key] = append([]byte(nil), value...)
	return nil
}

func (m *mockStore) Delete(_ context.Context, bucket, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, bucket+"/"+key)
	return nil
}

func (m *mockStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	_, ok := m.data[bucket+"/"+key]
	return ok, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	repo := New(ms, filepath.Join(t.TempDir(), "vault.key"))
	return repo, ms
}

func testRecord(t *testing.T) domain.VaultRecord {
	t.Helper()
	rec, err := domain.NewVaultRecord(
		"https://milvus.example.com", "sk-test-123", "genesis_vectors", "Dr. Lowe",
	)
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	return rec
}
