package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured signals that no vault record exists yet.
	ErrNotConfigured = errors.New("system is not configured")
	// ErrValidation signals invalid caller-supplied fields.
	ErrValidation = errors.New("validation failed")
	// ErrVaultIntegrity signals that the stored vault record failed authentication on decrypt.
	ErrVaultIntegrity = errors.New("vault record integrity check failed")
	// ErrUnsupportedFormat signals a file extension outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDocument signals a document with no extractable text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrExtraction signals a supported file that could not be parsed.
	ErrExtraction = errors.New("document extraction failed")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorStoreError signals a vector store request failure.
	ErrVectorStoreError = errors.New("vector store error")
)

// UnsupportedFormatError wraps ErrUnsupportedFormat with the offending extension.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("%s: file has no extension", ErrUnsupportedFormat.Error())
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedFormat.Error(), e.Extension)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// NewUnsupportedFormat creates an unsupported format error for an extension.
func NewUnsupportedFormat(extension string) error {
	return &UnsupportedFormatError{Extension: extension}
}
