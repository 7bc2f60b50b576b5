package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// mockIndex implements VectorIndex with scripted behavior and call recording.
type mockIndex struct {
	mu       sync.Mutex
	searchFn func(ctx context.Context, target domain.StoreTarget, vector []float32) (domain.Neighbor, error)
	insertFn func(ctx context.Context, target domain.StoreTarget, points []domain.VectorPoint) (int, error)

	searchCalls int
	batches     [][]domain.VectorPoint
	lastTarget  domain.StoreTarget
}

func (m *mockIndex) SearchNearest(ctx context.Context, target domain.StoreTarget, vector []float32) (domain.Neighbor, error) {
	m.mu.Lock()
	m.searchCalls++
	m.lastTarget = target
	fn := m.searchFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, target, vector)
	}
	return domain.Neighbor{}, nil
}

func (m *mockIndex) InsertBatch(ctx context.Context, target domain.StoreTarget, points []domain.VectorPoint) (int, error) {
	m.mu.Lock()
	m.batches = append(m.batches, points)
	m.lastTarget = target
	fn := m.insertFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, target, points)
	}
	return len(points), nil
}

func (m *mockIndex) insertedBatches() [][]domain.VectorPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches
}

type stubVault struct {
	rec   domain.VaultRecord
	err   error
	calls int
}

func (s *stubVault) Reveal(_ context.Context) (domain.VaultRecord, error) {
	s.calls++
	return s.rec, s.err
}

type stubChunker struct {
	chunks []domain.Chunk
	err    error
	calls  int
}

func (s *stubChunker) Chunk(_ []byte, _ string, _ time.Time) ([]domain.Chunk, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.chunks, nil
}

type stubEmbedder struct {
	fn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if s.fn != nil {
		return s.fn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0, 0, 0, 0}}, nil
}

func testVaultRecord(t *testing.T) domain.VaultRecord {
	t.Helper()
	rec, err := domain.NewVaultRecord("https://in01.serverless.gcp.zillizcloud.com", "mlv-key", "genesis_memory", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func makeChunks(t *testing.T, texts ...string) []domain.Chunk {
	t.Helper()
	uploadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		c, err := domain.NewChunk("doc.txt", i, text, uploadedAt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		chunks[i] = c
	}
	return chunks
}

func makeVectors(n, dim int) [][]float32 {
	vectors := make([][]float32, n)
	for i := range vectors {
		vectors[i] = make([]float32, dim)
		vectors[i][0] = float32(i)
	}
	return vectors
}
