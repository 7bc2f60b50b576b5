package domain

import (
	"fmt"
	"strings"
	"time"
)

// Chunk is one ordered segment of an uploaded document (immutable value object).
type Chunk struct {
	sourceFilename string
	position       int
	text           string
	uploadedAt     time.Time
}

// NewChunk validates and creates a Chunk.
// Text must be non-empty after trimming; position is 0-based within the upload.
func NewChunk(sourceFilename string, position int, text string, uploadedAt time.Time) (Chunk, error) {
	if sourceFilename == "" {
		return Chunk{}, fmt.Errorf("source filename is required")
	}
	if position < 0 {
		return Chunk{}, fmt.Errorf("chunk position must not be negative")
	}
	if strings.TrimSpace(text) == "" {
		return Chunk{}, fmt.Errorf("chunk text is required")
	}

	return Chunk{
		sourceFilename: sourceFilename,
		position:       position,
		text:           text,
		uploadedAt:     uploadedAt.UTC(),
	}, nil
}

// ReconstructChunk creates a Chunk without validation.
func ReconstructChunk(sourceFilename string, position int, text string, uploadedAt time.Time) Chunk {
	return Chunk{sourceFilename: sourceFilename, position: position, text: text, uploadedAt: uploadedAt}
}

// SourceFilename returns the originating file name.
func (c *Chunk) SourceFilename() string { return c.sourceFilename }

// Position returns the 0-based chunk index within the upload.
func (c *Chunk) Position() int { return c.position }

// Text returns the chunk text.
func (c *Chunk) Text() string { return c.text }

// UploadedAt returns the shared ingestion timestamp of the upload.
func (c *Chunk) UploadedAt() time.Time { return c.uploadedAt }
