// Package ingest coordinates the document ingestion pipeline: reveal
// credentials, chunk, embed, then check-and-insert through the
// CoherenceGuard. Stages of one upload run strictly in order; only the
// embedding of individual chunks is parallelized.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	"github.com/YellowKidokc/CloudFlarevector/internal/logger"
	"github.com/YellowKidokc/CloudFlarevector/internal/metrics"
)

// Terminal outcome labels for the uploads_total metric.
const (
	outcomeCommitted = "committed"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Service is the ingestion orchestrator.
type Service struct {
	vault       CredentialSource
	chunker     Chunker
	embedder    domain.Embedder
	guard       *CoherenceGuard
	concurrency int
	dimensions  int
}

// New creates an ingestion service.
func New(vault CredentialSource, chunker Chunker, embedder domain.Embedder, guard *CoherenceGuard) *Service {
	return &Service{
		vault:       vault,
		chunker:     chunker,
		embedder:    embedder,
		guard:       guard,
		concurrency: 4,
	}
}

// WithConcurrency bounds how many chunks embed in parallel per upload.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithDimensions enforces a fixed embedding width. Zero disables the check.
func (s *Service) WithDimensions(n int) *Service {
	if n > 0 {
		s.dimensions = n
	}
	return s
}

// Upload runs the full pipeline for one document and returns the terminal
// outcome. A failure at any stage aborts the rest; vectors are only ever
// inserted after the whole batch passes the duplicate check.
func (s *Service) Upload(ctx context.Context, data []byte, filename string) (domain.UploadOutcome, error) {
	log := logger.FromContext(ctx).With(zap.String("filename", filename))

	outcome, err := s.upload(ctx, log, data, filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(outcomeFailed).Inc()
		return domain.UploadOutcome{}, err
	}

	if outcome.Rejected {
		metrics.UploadsTotal.WithLabelValues(outcomeRejected).Inc()
		metrics.DuplicateRejectionsTotal.Inc()
		log.Info("upload rejected",
			zap.Int("duplicate_chunks", outcome.DuplicateChunks),
			zap.Float64("max_similarity", outcome.MaxSimilarity),
		)
	} else {
		metrics.UploadsTotal.WithLabelValues(outcomeCommitted).Inc()
		metrics.InsertedVectorsTotal.Add(float64(outcome.InsertedVectors))
		log.Info("upload committed", zap.Int("inserted_vectors", outcome.InsertedVectors))
	}
	return outcome, nil
}

func (s *Service) upload(ctx context.Context, log *zap.Logger, data []byte, filename string) (domain.UploadOutcome, error) {
	// The vault gate comes first: an unconfigured system rejects the
	// upload before any bytes are parsed.
	rec, err := s.vault.Reveal(ctx)
	if err != nil {
		return domain.UploadOutcome{}, fmt.Errorf("reveal credentials: %w", err)
	}

	uploadedAt := time.Now().UTC()
	chunks, err := s.chunker.Chunk(data, filename, uploadedAt)
	if err != nil {
		return domain.UploadOutcome{}, fmt.Errorf("chunk document: %w", err)
	}
	metrics.UploadChunks.Observe(float64(len(chunks)))
	log.Debug("document extracted", zap.Int("chunks", len(chunks)))

	vectors, err := s.embedAll(ctx, chunks)
	if err != nil {
		return domain.UploadOutcome{}, err
	}
	log.Debug("chunks embedded", zap.Int("vectors", len(vectors)))

	outcome, err := s.guard.CheckAndInsert(ctx, rec.Target(), rec.Identity(), chunks, vectors)
	if err != nil {
		return domain.UploadOutcome{}, fmt.Errorf("check and insert: %w", err)
	}
	return outcome, nil
}

// embedAll embeds every chunk, bounded by the configured concurrency.
// Results keep chunk order regardless of completion order.
func (s *Service) embedAll(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range chunks {
		i := i
		g.Go(func() error {
			chunk := &chunks[i]
			result, err := s.embedder.Embed(gctx, chunk.Text())
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", chunk.Position(), err)
			}
			if s.dimensions > 0 && len(result.Embedding) != s.dimensions {
				return fmt.Errorf("%w: chunk %d produced %d components, expected %d",
					domain.ErrVectorDimMismatch, chunk.Position(), len(result.Embedding), s.dimensions)
			}
			vectors[i] = result.Embedding
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
