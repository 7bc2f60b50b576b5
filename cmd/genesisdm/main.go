package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/YellowKidokc/CloudFlarevector/internal/chunker"
	"github.com/YellowKidokc/CloudFlarevector/internal/config"
	dbBolt "github.com/YellowKidokc/CloudFlarevector/internal/db/bolt"
	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	logpkg "github.com/YellowKidokc/CloudFlarevector/internal/logger"
	"github.com/YellowKidokc/CloudFlarevector/internal/metrics"
	"github.com/YellowKidokc/CloudFlarevector/internal/repository/embcache"
	"github.com/YellowKidokc/CloudFlarevector/internal/repository/milvus"
	"github.com/YellowKidokc/CloudFlarevector/internal/repository/vaultrec"
	chiTransport "github.com/YellowKidokc/CloudFlarevector/internal/transport/chi"
	openaiEmb "github.com/YellowKidokc/CloudFlarevector/internal/transport/openai"
	embeddinguc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/embedding"
	healthuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/health"
	ingestuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/ingest"
	vaultuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/vault"
	"github.com/YellowKidokc/CloudFlarevector/internal/version"
)

func main() {
	// .env first, then YAML config selected by ENV
	_ = godotenv.Load()
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Genesis Data Manager",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("data_dir", cfg.Vault.Dir),
	)

	// One bbolt file holds the sealed vault record and the embedding cache.
	store, err := dbBolt.Open(
		filepath.Join(cfg.Vault.Dir, "genesis.db"),
		vaultrec.Bucket, embcache.Bucket,
	)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer store.Close()

	// Register ingest metrics explicitly (no init())
	metrics.RegisterIngestMetrics()

	embedder := buildEmbedder(cfg, store, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", cfg.Embedding.Cache),
	)

	vaultRepo := vaultrec.New(store, filepath.Join(cfg.Vault.Dir, "vault.key"))
	vaultSvc := vaultuc.New(vaultRepo)

	index := milvus.New(milvus.Options{
		VectorField: cfg.Dedup.VectorField,
		MetricType:  cfg.Dedup.Metric,
		TopK:        cfg.Dedup.TopK,
		NProbe:      cfg.Dedup.NProbe,
		Timeout:     time.Duration(cfg.Store.TimeoutSec) * time.Second,
	})
	guard := ingestuc.NewCoherenceGuard(index, cfg.Dedup.Threshold)

	ingestSvc := ingestuc.New(
		vaultSvc,
		chunker.New(cfg.Upload.ChunkWords, cfg.Upload.ChunkOverlapWords),
		embedder,
		guard,
	).WithConcurrency(cfg.Embedding.Concurrency).WithDimensions(cfg.Embedding.Dimensions)

	healthSvc := healthuc.New(store, vaultRepo, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(vaultSvc, ingestSvc, healthSvc, cfg.Upload.MaxFileBytes, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain:
// OpenAI -> Cached -> Normalized -> Instrumented.
// Normalization sits outside the cache so vectors come out unit-length
// no matter which layer produced them.
func buildEmbedder(cfg config.Config, store *dbBolt.Store, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if cfg.Embedding.Cache {
		embedder = embcache.New(base, store, cfg.Embedding.Model, metrics.EmbeddingCacheTotal, logger)
	}

	embedder = domain.NewNormalizedEmbedder(embedder)

	return embeddinguc.NewInstrumentedEmbedder(embedder, "openai", cfg.Embedding.Model, logger)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// corsMiddleware allows the browser UI origin. An empty list allows all,
// matching how the original backend ran behind its tunnel.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"detail": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
