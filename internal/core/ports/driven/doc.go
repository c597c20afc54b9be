// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - Extractor: Produces text from a source file
//   - ExtractorRegistry: Selects an extractor by file type
//   - Ledger: Durable record of per-file processing outcomes
//   - VectorStore: Persists and queries embedding records
//   - EmbeddingService: Generates vector embeddings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
