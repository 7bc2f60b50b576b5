package ingest

import (
	"context"
	"time"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// CredentialSource reveals the vault record for one ingestion pass.
type CredentialSource interface {
	Reveal(ctx context.Context) (domain.VaultRecord, error)
}

// Chunker splits raw document bytes into ordered text chunks.
type Chunker interface {
	Chunk(data []byte, filename string, uploadedAt time.Time) ([]domain.Chunk, error)
}

// VectorIndex is the external vector collection surface used by the guard.
type VectorIndex interface {
	SearchNearest(ctx context.Context, target domain.StoreTarget, vector []float32) (domain.Neighbor, error)
	InsertBatch(ctx context.Context, target domain.StoreTarget, points []domain.VectorPoint) (int, error)
}
