package chunker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// extractPDF concatenates per-page text, pages separated by newlines.
// Pages without extractable text (scans, pure images) contribute nothing.
func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: parse pdf: %v", domain.ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse pdf: %w", domain.ErrExtraction, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

// extractText decodes bytes as UTF-8, dropping invalid sequences.
func extractText(data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), ""), nil
}

// extractJSON parses the document and re-renders it indented, so chunk
// boundaries fall between syntactic elements instead of inside one line.
func extractJSON(data []byte) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %w", domain.ErrExtraction, err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: render JSON: %w", domain.ErrExtraction, err)
	}
	return string(out), nil
}
