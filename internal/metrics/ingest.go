package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion pipeline Prometheus metrics.
var (
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "uploads_total",
			Help:      "Total number of upload requests by terminal outcome",
		},
		[]string{"outcome"}, // "committed" / "rejected" / "failed"
	)

	UploadChunks = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "genesis",
			Name:      "upload_chunks",
			Help:      "Number of chunks produced per upload",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	InsertedVectorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "inserted_vectors_total",
			Help:      "Total vectors committed to the vector store",
		},
	)

	DuplicateRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "duplicate_rejections_total",
			Help:      "Total uploads rejected as near-duplicates",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "embedding_errors_total",
			Help:      "Total embedding request failures by reason",
		},
		[]string{"provider", "model", "reason"}, // reason: "api_error" / "empty_response"
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genesis",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	VectorStoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genesis",
			Name:      "vector_store_requests_total",
			Help:      "Total vector store requests",
		},
		[]string{"op", "status"}, // op: "search" / "insert"
	)

	VectorStoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "genesis",
			Name:      "vector_store_request_duration_seconds",
			Help:      "Vector store request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingest metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(UploadChunks)
	prometheus.MustRegister(InsertedVectorsTotal)
	prometheus.MustRegister(DuplicateRejectionsTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(VectorStoreRequestsTotal)
	prometheus.MustRegister(VectorStoreRequestDuration)
	ingestMetricsRegistered = true
}
