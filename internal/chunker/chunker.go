// Package chunker provides deterministic fixed-size text chunking.
package chunker

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// DefaultChunkSize is the default number of bytes per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping bytes.
const DefaultOverlap = 200

// Chunker splits extracted text into bounded-size overlapping segments.
//
// Chunking is deterministic: identical input text and parameters always
// yield identical chunk boundaries. The pipeline relies on this for
// idempotent re-ingestion after a crash mid-embedding - reprocessing
// produces the same record IDs and upserts overwrite the partial state.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker. Invalid parameters are a configuration error:
// the caller should refuse to start rather than process files with a
// silently adjusted configuration.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, &domain.ConfigurationError{Field: "chunk_size", Reason: "must be positive"}
	}
	if overlap < 0 {
		return nil, &domain.ConfigurationError{Field: "chunk_overlap", Reason: "must not be negative"}
	}
	if overlap >= size {
		return nil, &domain.ConfigurationError{Field: "chunk_overlap", Reason: "must be smaller than chunk_size"}
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into chunks for the given file identity.
// Empty text yields no chunks; text shorter than the chunk size yields
// exactly one. Sequence indices are 0-based and contiguous; character
// spans of adjacent chunks overlap by the configured window.
func (c *Chunker) Chunk(path, fingerprint, text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	step := c.size - c.overlap
	estimated := (len(text) / step) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	sequence := 0
	for start := 0; start < len(text); start += step {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}

		chunks = append(chunks, domain.Chunk{
			Path:        path,
			Fingerprint: fingerprint,
			Sequence:    sequence,
			Content:     text[start:end],
			Start:       start,
			End:         end,
		})
		sequence++

		if end == len(text) {
			break
		}
	}

	return chunks
}

var (
	imageRefPattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	urlPattern        = regexp.MustCompile(`https?://[^\s)]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips non-prose artefacts from extracted text before chunking:
// markdown image references, bare URLs, and runs of whitespace. Cleaning
// happens before chunking so boundaries are stable across re-extraction.
func Clean(text string) string {
	text = imageRefPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
