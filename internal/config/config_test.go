package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8000},
		Embedding: EmbeddingConfig{BaseURL: "http://localhost:8081/v1"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEmbeddingBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.BaseURL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding base_url")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Dedup.Threshold = 1.5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for threshold above 1")
	}
}

func TestValidate_InvalidMetric(t *testing.T) {
	cfg := validConfig()
	cfg.Dedup.Metric = "EUCLID"

	expected := `dedup.metric must be COSINE, IP or L2, got "EUCLID"`
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid metric")
	}
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_OverlapNotBelowChunkSize(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.ChunkWords = 100
	cfg.Upload.ChunkOverlapWords = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap >= chunk size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("expected Port=8000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Vault.Dir != "data" {
		t.Errorf("expected Vault.Dir='data', got %q", cfg.Vault.Dir)
	}
	if cfg.Embedding.Model != "sentence-transformers/all-MiniLM-L6-v2" {
		t.Errorf("unexpected default model %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Concurrency != 4 {
		t.Errorf("expected Concurrency=4, got %d", cfg.Embedding.Concurrency)
	}
	if cfg.Dedup.Threshold != 0.98 {
		t.Errorf("expected Threshold=0.98, got %v", cfg.Dedup.Threshold)
	}
	if cfg.Dedup.Metric != "COSINE" {
		t.Errorf("expected Metric=COSINE, got %q", cfg.Dedup.Metric)
	}
	if cfg.Dedup.VectorField != "embedding" {
		t.Errorf("expected VectorField='embedding', got %q", cfg.Dedup.VectorField)
	}
	if cfg.Dedup.TopK != 1 {
		t.Errorf("expected TopK=1, got %d", cfg.Dedup.TopK)
	}
	if cfg.Dedup.NProbe != 10 {
		t.Errorf("expected NProbe=10, got %d", cfg.Dedup.NProbe)
	}
	if cfg.Upload.ChunkWords != 750 {
		t.Errorf("expected ChunkWords=750, got %d", cfg.Upload.ChunkWords)
	}
	if cfg.Upload.ChunkOverlapWords != 150 {
		t.Errorf("expected ChunkOverlapWords=150, got %d", cfg.Upload.ChunkOverlapWords)
	}
	if cfg.Upload.MaxFileBytes != 25<<20 {
		t.Errorf("expected MaxFileBytes=25MiB, got %d", cfg.Upload.MaxFileBytes)
	}
	if cfg.Store.TimeoutSec != 30 {
		t.Errorf("expected Store.TimeoutSec=30, got %d", cfg.Store.TimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Vault:  VaultConfig{Dir: "/var/lib/genesis"},
		Dedup:  DedupConfig{Threshold: 0.9, TopK: 3},
		Upload: UploadConfig{ChunkWords: 500, ChunkOverlapWords: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.HTTP.Port)
	}
	if cfg.Vault.Dir != "/var/lib/genesis" {
		t.Errorf("expected Vault.Dir kept, got %q", cfg.Vault.Dir)
	}
	if cfg.Dedup.Threshold != 0.9 {
		t.Errorf("expected Threshold=0.9, got %v", cfg.Dedup.Threshold)
	}
	if cfg.Dedup.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Dedup.TopK)
	}
	if cfg.Upload.ChunkWords != 500 {
		t.Errorf("expected ChunkWords=500, got %d", cfg.Upload.ChunkWords)
	}
}
