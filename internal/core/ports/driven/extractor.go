package driven

import "context"

// Extractor produces plain text (or Markdown) from a source file.
// Implementations wrap a specific parser: PDF, plain text, etc.
// Extraction failures are a property of the file, not the run - a corrupt
// or encrypted PDF fails identically on retry, so callers must not retry
// them automatically.
type Extractor interface {
	// Extract reads the file at path and returns its text content.
	// Failures are returned as *domain.ExtractionError.
	Extract(ctx context.Context, path string) (string, error)

	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot (e.g. ".pdf").
	Extensions() []string
}

// ExtractorRegistry selects an extractor for a file path.
type ExtractorRegistry interface {
	// ForPath returns the extractor registered for the path's extension.
	// Returns domain.ErrUnsupportedType when none is registered.
	ForPath(path string) (Extractor, error)

	// Supported returns all registered extensions.
	Supported() []string
}
