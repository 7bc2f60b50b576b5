package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// CoherenceGuard owns the duplicate decision for one upload batch.
//
// The decision is all-or-nothing: a single chunk at or over the similarity
// threshold poisons the whole batch and nothing is inserted.
type CoherenceGuard struct {
	index     VectorIndex
	threshold float64

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCoherenceGuard creates a guard. threshold is a cosine similarity in
// [-1, 1]; scores at or above it count as duplicates.
func NewCoherenceGuard(index VectorIndex, threshold float64) *CoherenceGuard {
	return &CoherenceGuard{
		index:     index,
		threshold: threshold,
		locks:     make(map[string]*sync.Mutex),
	}
}

// collectionLock returns the mutex serializing check-and-insert per collection.
func (g *CoherenceGuard) collectionLock(collection string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		g.locks[collection] = l
	}
	return l
}

// CheckAndInsert probes every vector for its nearest stored neighbor and,
// only when none reaches the threshold, inserts the whole batch. The
// critical section spans probe and insert; concurrent uploads into the
// same collection serialize here, so both cannot pass the probe against
// the same store state.
func (g *CoherenceGuard) CheckAndInsert(
	ctx context.Context,
	target domain.StoreTarget,
	identity string,
	chunks []domain.Chunk,
	vectors [][]float32,
) (domain.UploadOutcome, error) {
	if len(chunks) != len(vectors) {
		return domain.UploadOutcome{}, fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	lock := g.collectionLock(target.Collection)
	lock.Lock()
	defer lock.Unlock()

	duplicates := 0
	maxScore := 0.0
	for _, vec := range vectors {
		neighbor, err := g.index.SearchNearest(ctx, target, vec)
		if err != nil {
			return domain.UploadOutcome{}, fmt.Errorf("nearest neighbor probe: %w", err)
		}
		if !neighbor.Found {
			// Empty collection: nothing to duplicate.
			continue
		}
		if neighbor.Score > maxScore {
			maxScore = neighbor.Score
		}
		if neighbor.Score >= g.threshold {
			duplicates++
		}
	}

	if duplicates > 0 {
		return domain.RejectedOutcome(duplicates, maxScore), nil
	}

	inserted, err := g.index.InsertBatch(ctx, target, buildPoints(identity, chunks, vectors))
	if err != nil {
		return domain.UploadOutcome{}, fmt.Errorf("insert batch: %w", err)
	}
	return domain.AcceptedOutcome(inserted), nil
}

func buildPoints(identity string, chunks []domain.Chunk, vectors [][]float32) []domain.VectorPoint {
	points := make([]domain.VectorPoint, len(chunks))
	for i := range chunks {
		points[i] = domain.VectorPoint{
			Vector:     vectors[i],
			Text:       chunks[i].Text(),
			Filename:   chunks[i].SourceFilename(),
			UploadedAt: chunks[i].UploadedAt().Format(time.RFC3339),
			Identity:   identity,
			Position:   chunks[i].Position(),
		}
	}
	return points
}
