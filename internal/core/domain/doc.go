// Package domain defines the core business entities for pdfvector.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceFile: A file observed in the watched directory
//   - Chunk: A bounded segment of extracted text, the unit of embedding
//   - LedgerEntry: The durable outcome of one processing attempt
//   - VectorRecord: A persisted embedding with its source chunk
//   - QueryMatch: A similarity search result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
