package vault

import (
	"context"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// Repository defines the encrypted storage contract for the vault record.
type Repository interface {
	Store(ctx context.Context, rec domain.VaultRecord) error
	Load(ctx context.Context) (domain.VaultRecord, error)
	Clear(ctx context.Context) error
}
