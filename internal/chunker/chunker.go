// Package chunker turns uploaded documents into ordered text chunks.
//
// Extraction is format-specific (PDF, Markdown, plain text, JSON); splitting
// is a sliding word window shared by all formats. Window size and overlap are
// fixed at construction.
package chunker

import (
	"fmt"
	"strings"
	"time"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// Chunker splits extracted document text into overlapping word windows.
type Chunker struct {
	chunkWords   int
	overlapWords int
}

// New returns a Chunker producing windows of chunkWords words, each window
// starting chunkWords-overlapWords words after the previous one.
func New(chunkWords, overlapWords int) *Chunker {
	return &Chunker{chunkWords: chunkWords, overlapWords: overlapWords}
}

// Chunk extracts text from raw document bytes and splits it into windows.
// The format is chosen by filename extension, so an unsupported extension
// fails before any bytes are parsed. A document whose extracted text holds
// no words at all is rejected as empty.
func (c *Chunker) Chunk(data []byte, filename string, uploadedAt time.Time) ([]domain.Chunk, error) {
	format, err := FormatForFilename(filename)
	if err != nil {
		return nil, err
	}

	text, err := format.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", filename, err)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q has no extractable text", domain.ErrEmptyDocument, filename)
	}

	step := c.chunkWords - c.overlapWords

	var chunks []domain.Chunk
	for start := 0; start < len(words); {
		end := min(start+c.chunkWords, len(words))
		chunk, err := domain.NewChunk(filename, len(chunks), strings.Join(words[start:end], " "), uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %q: %w", len(chunks), filename, err)
		}
		chunks = append(chunks, chunk)

		next := start + step
		if next <= start {
			// Overlap at or above the window size would stall or walk
			// backwards; jump past the window instead.
			next = end
		}
		start = next
	}
	return chunks, nil
}
