package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/YellowKidokc/CloudFlarevector/internal/db"
)

// Store is a bbolt-backed implementation of db.Store.
// One file holds every bucket; writes are serialized by bbolt itself.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file and ensures the given buckets exist.
// The parent directory is created on demand with owner-only permissions.
func Open(path string, buckets ...string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, &db.Error{Op: db.OpOpen, Err: fmt.Errorf("create data dir: %w", err)}
		}
	}

	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	return &Store{db: bdb}, nil
}

var _ db.Store = (*Store)(nil)

// Get returns the value for a key. The returned slice is a copy and
// stays valid after the transaction closes.
func (s *Store) Get(_ context.Context, bucket, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return db.ErrBucketNotFound
		}
		data := b.Get([]byte(key))
		if data == nil {
			return db.ErrKeyNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// Set stores a value under a key.
func (s *Store) Set(_ context.Context, bucket, key string, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return db.ErrBucketNotFound
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, bucket, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return db.ErrBucketNotFound
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// Exists reports whether a key holds a value.
func (s *Store) Exists(_ context.Context, bucket, key string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return db.ErrBucketNotFound
		}
		found = b.Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return found, nil
}

// Ping verifies the file is readable.
func (s *Store) Ping(_ context.Context) error {
	if err := s.db.View(func(*bbolt.Tx) error { return nil }); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.db.Path()
}
