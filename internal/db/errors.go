package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound    = errors.New("db: key not found")
	ErrBucketNotFound = errors.New("db: bucket not found")
)

// Op constants name the storage operation for error context.
const (
	OpOpen   = "OPEN"
	OpGet    = "GET"
	OpPut    = "PUT"
	OpDelete = "DELETE"
	OpExists = "EXISTS"
	OpPing   = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
