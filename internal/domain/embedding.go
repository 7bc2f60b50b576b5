package domain

import (
	"context"
	"fmt"
	"math"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Normalize scales a vector to unit L2 norm in place and returns it.
// Zero vectors are returned untouched.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		v[i] = float32(float64(x) / norm)
	}
	return v
}

// NormalizedEmbedder is a domain decorator that scales every vector to unit length.
// Cosine similarity against stored vectors then equals their dot product.
type NormalizedEmbedder struct {
	inner Embedder
}

// NewNormalizedEmbedder creates a decorator that normalizes embeddings.
func NewNormalizedEmbedder(inner Embedder) *NormalizedEmbedder {
	return &NormalizedEmbedder{inner: inner}
}

// Embed delegates to the inner embedder and normalizes the result.
func (e *NormalizedEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, text)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("normalized embed: %w", err)
	}
	result.Embedding = Normalize(result.Embedding)
	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (e *NormalizedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
