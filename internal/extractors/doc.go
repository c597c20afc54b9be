// Package extractors provides text extraction from source files and a
// registry that selects an extractor by file extension.
//
// Each format lives in its own subpackage so that format-specific
// dependencies are only pulled in where needed:
//
//   - pdf: PDF text extraction (ledongthuc/pdf, pure Go)
//   - plaintext: .txt and .md files
package extractors
