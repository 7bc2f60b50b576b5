package embcache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/YellowKidokc/CloudFlarevector/internal/db"
	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockHealthEmbedder struct {
	mockEmbedder
	healthErr error
}

func (m *mockHealthEmbedder) HealthCheck(_ context.Context) error { return m.healthErr }

func newTestLogger() *zap.Logger { return zap.NewNop() }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, bucket, key string) ([]byte, error)
	setFn func(ctx context.Context, bucket, key string, value []byte) error
}

func (m *mockKVStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, bucket, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, bucket, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, bucket, key, value)
	}
	return nil
}

func newTestCachedEmbedder(t *testing.T, inner *mockEmbedder) (*CachedEmbedder, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	ce := New(inner, ms, "all-MiniLM-L6-v2", nil, zap.NewNop())
	return ce, ms
}
