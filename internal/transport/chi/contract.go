package chi

import (
	"context"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	healthuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/health"
)

// VaultService is the configuration surface consumed by the transport.
type VaultService interface {
	Setup(ctx context.Context, rec domain.VaultRecord) (domain.VaultStatus, error)
	Status(ctx context.Context) (domain.VaultStatus, error)
	Reset(ctx context.Context) error
}

// IngestService runs the upload pipeline for one document.
type IngestService interface {
	Upload(ctx context.Context, data []byte, filename string) (domain.UploadOutcome, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
