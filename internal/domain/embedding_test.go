package domain

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

func TestNormalize_UnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("expected unit norm, got squared length %f", sum)
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("expected [0.6 0.8], got %v", v)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Errorf("expected zero vector untouched, got %f at %d", x, i)
		}
	}
}

func TestNormalizedEmbedder_NormalizesResult(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{
		Embedding:    []float32{3, 4},
		PromptTokens: 7,
		TotalTokens:  7,
	}}
	emb := NewNormalizedEmbedder(inner)

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "hello world" {
		t.Errorf("expected text passed through, got %q", inner.got)
	}
	if math.Abs(float64(result.Embedding[0])-0.6) > 1e-6 {
		t.Errorf("expected normalized vector, got %v", result.Embedding)
	}
	if result.TotalTokens != 7 {
		t.Errorf("expected token usage preserved, got %d", result.TotalTokens)
	}
}

func TestNormalizedEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &stubEmbedder{err: innerErr}
	emb := NewNormalizedEmbedder(inner)

	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

type stubHealthEmbedder struct {
	stubEmbedder
	healthErr error
}

func (s *stubHealthEmbedder) HealthCheck(_ context.Context) error { return s.healthErr }

func TestNormalizedEmbedder_HealthCheckDelegates(t *testing.T) {
	hcErr := errors.New("unreachable")
	emb := NewNormalizedEmbedder(&stubHealthEmbedder{healthErr: hcErr})

	if err := emb.HealthCheck(context.Background()); !errors.Is(err, hcErr) {
		t.Errorf("expected delegated health error, got %v", err)
	}
}

func TestNormalizedEmbedder_HealthCheckWithoutInnerChecker(t *testing.T) {
	emb := NewNormalizedEmbedder(&stubEmbedder{})

	if err := emb.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected nil for inner without health check, got %v", err)
	}
}
