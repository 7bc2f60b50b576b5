package chunker

import (
	"path/filepath"
	"strings"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// Kind names a supported document format.
type Kind string

// Supported document formats.
const (
	KindPDF      Kind = "pdf"
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
	KindJSON     Kind = "json"
)

// Format is a closed variant over the supported document formats.
// Each variant carries its own extraction function; the only way to
// obtain one is FormatForFilename, so an unrecognized extension is a
// construction failure rather than a runtime branch.
type Format struct {
	kind    Kind
	extract func(data []byte) (string, error)
}

// Kind returns the format name.
func (f Format) Kind() Kind { return f.kind }

// Extract converts raw file bytes into plain text.
func (f Format) Extract(data []byte) (string, error) {
	return f.extract(data)
}

var formatsByExt = map[string]Format{
	".pdf":  {kind: KindPDF, extract: extractPDF},
	".md":   {kind: KindMarkdown, extract: extractText},
	".txt":  {kind: KindText, extract: extractText},
	".json": {kind: KindJSON, extract: extractJSON},
}

// FormatForFilename resolves the format variant from the file extension,
// case-insensitively. Unknown extensions fail with ErrUnsupportedFormat.
func FormatForFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	f, ok := formatsByExt[ext]
	if !ok {
		return Format{}, domain.NewUnsupportedFormat(ext)
	}
	return f, nil
}
