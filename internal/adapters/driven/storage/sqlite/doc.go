// Package sqlite provides SQLite-backed implementations of the Ledger
// and VectorStore ports.
//
// Both share a single database file in the persistence directory, opened
// in WAL mode so the query path can read concurrently with ingestion
// writes without torn reads. Schema changes are applied through embedded
// SQL migrations at startup.
//
// Vectors are stored as little-endian float32 BLOBs. Similarity queries
// are a brute-force cosine scan, which is adequate for the corpus sizes a
// watched folder produces; swapping in an ANN index stays behind the
// VectorStore port.
package sqlite
