// Package chi is the HTTP transport for the Genesis Data Manager API.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	healthuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, detail string) bool

// Server exposes the vault and ingestion use cases over HTTP.
type Server struct {
	vault         VaultService
	ingest        IngestService
	health        HealthService
	maxFileBytes  int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. maxFileBytes caps the upload
// body; zero disables the cap.
func NewServer(
	vault VaultService,
	ingest IngestService,
	health HealthService,
	maxFileBytes int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		vault:        vault,
		ingest:       ingest,
		health:       health,
		maxFileBytes: maxFileBytes,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrNotConfigured, http.StatusBadRequest),
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType),
		sentinelHandler(domain.ErrEmptyDocument, http.StatusBadRequest),
		sentinelHandler(domain.ErrExtraction, http.StatusBadRequest),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadGateway),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
		sentinelHandler(domain.ErrVectorStoreError, http.StatusBadGateway),
	}
	return s
}

// Register mounts every route on the given router.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/config/status", s.ConfigStatus)
	r.Post("/config/setup", s.ConfigSetup)
	r.Post("/config/reset", s.ConfigReset)
	r.Post("/upload", s.Upload)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ConfigStatus handles GET /config/status.
func (s *Server) ConfigStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.vault.Status(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusToWire(status))
}

// ConfigSetup handles POST /config/setup. A valid body replaces any
// existing record wholesale; there are no partial updates.
func (s *Server) ConfigSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := domain.NewVaultRecord(req.CloudflareURL, req.APIKey, req.CollectionName, req.Identity)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := s.vault.Setup(r.Context(), rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusToWire(status))
}

// ConfigReset handles POST /config/reset. Always succeeds, even on an
// already-empty vault.
func (s *Server) ConfigReset(w http.ResponseWriter, r *http.Request) {
	if err := s.vault.Reset(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /upload: one multipart file per request, pushed
// through the whole ingestion pipeline before the response is written.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	if s.maxFileBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxFileBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart form must carry a 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	outcome, err := s.ingest.Upload(r.Context(), data, header.Filename)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := uploadResponse{
		InsertedVectors: outcome.InsertedVectors,
		DuplicateChunks: outcome.DuplicateChunks,
	}
	if outcome.Rejected {
		resp.DuplicateMessage = domain.DuplicateNotice
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func statusToWire(status domain.VaultStatus) statusResponse {
	return statusResponse{
		Configured:     status.Configured,
		Identity:       status.Identity,
		CollectionName: status.CollectionName,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// safeDetail returns a sentinel error message for the client without
// exposing internals. The api key can never appear here because no
// sentinel message carries request data.
func safeDetail(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNotConfigured,
		domain.ErrUnsupportedFormat,
		domain.ErrEmptyDocument,
		domain.ErrExtraction,
		domain.ErrVectorDimMismatch,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorStoreError,
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, detail string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, detail)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	detail := safeDetail(err)
	for _, h := range s.errorHandlers {
		if h(w, err, detail) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
