package health

import (
	"context"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// VaultChecker verifies the stored credential record is readable.
type VaultChecker interface {
	Exists(ctx context.Context) (bool, error)
	Load(ctx context.Context) (domain.VaultRecord, error)
}
