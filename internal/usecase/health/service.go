package health

import (
	"context"
	"errors"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	vault     VaultChecker
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(db DBPinger, vault VaultChecker, embedding EmbeddingChecker) *Service {
	return &Service{db: db, vault: vault, embedding: embedding}
}

// Check runs health checks against all components. An absent vault record
// is healthy (fresh install); an unreadable one is not.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	checks["vault"] = s.checkVault(ctx)

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) checkVault(ctx context.Context) CheckResult {
	exists, err := s.vault.Exists(ctx)
	if err != nil {
		return CheckError
	}
	if !exists {
		return CheckOK
	}

	if _, err := s.vault.Load(ctx); err != nil && !errors.Is(err, domain.ErrNotConfigured) {
		return CheckError
	}
	return CheckOK
}
