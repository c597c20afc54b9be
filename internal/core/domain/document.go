package domain

import (
	"strconv"
	"time"
)

// SourceFile represents a file observed in the watched directory.
// A new logical SourceFile supersedes the old one under the same path
// when the content fingerprint changes.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string

	// Fingerprint is the SHA-256 hash of the file bytes, hex-encoded.
	Fingerprint string

	// Size is the file size in bytes at fingerprinting time.
	Size int64

	// ModTime is the file's last-modified timestamp at fingerprinting time.
	ModTime time.Time
}

// Chunk represents a contiguous slice of extracted text from one SourceFile.
// Chunks are the unit of embedding. Sequence indices are 0-based and
// ordering-significant; character spans of adjacent chunks may overlap.
type Chunk struct {
	// Path is the source file path.
	Path string

	// Fingerprint is the content fingerprint of the parent file.
	Fingerprint string

	// Sequence is the ordinal position within the file.
	Sequence int

	// Content is the text content of this chunk.
	Content string

	// Start is the byte offset of the chunk in the extracted text.
	Start int

	// End is the byte offset one past the last byte of the chunk.
	End int
}

// VectorRecord pairs a chunk's embedding with its source text and metadata.
// Records are keyed by (path, fingerprint, sequence) so that reprocessing
// the same file overwrites rather than duplicates.
type VectorRecord struct {
	// ID is the stable upsert key, derived from path, fingerprint and sequence.
	ID string

	// Path is the source file path.
	Path string

	// Fingerprint is the content fingerprint of the parent file.
	Fingerprint string

	// Sequence is the chunk's ordinal position within the file.
	Sequence int

	// Content is the original chunk text.
	Content string

	// Embedding is the vector representation of the chunk.
	Embedding []float32

	// CreatedAt is when the record was stored.
	CreatedAt time.Time
}

// QueryMatch is a similarity search result.
type QueryMatch struct {
	// Path is the source file the matched chunk came from.
	Path string

	// Sequence is the matched chunk's position within its file.
	Sequence int

	// Content is the matched chunk text.
	Content string

	// Score is the cosine similarity to the query (higher is closer).
	Score float64
}

// RecordID builds the stable VectorRecord identifier for a chunk.
// The same (path, fingerprint, sequence) always yields the same ID,
// which gives upserts their overwrite-not-duplicate semantics.
func RecordID(path, fingerprint string, sequence int) string {
	// Path may contain '#'; fingerprint is hex and sequence is numeric,
	// so the last two separators are unambiguous.
	return path + "#" + fingerprint + "#" + strconv.Itoa(sequence)
}
