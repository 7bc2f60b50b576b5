package db

import "context"

// Store is the local durable storage facade.
//
// Consumers use narrow sub-interfaces (ISP); the facade exists for the
// composition root and health checks.
type Store interface {
	Pinger
	KVStore
	Close() error
}

// Pinger checks storage availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides bucket-scoped key-value operations.
type KVStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Set(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}
