// Package ingestion provides the document indexing pipeline for the assistant.
//
// The Indexer type manages the full ingestion workflow for a manual:
//   - Splitting the document text into overlapping segments
//   - Generating embeddings for each segment batch
//   - Upserting the vectors into the vector store
//
// Batches are processed concurrently using a worker pool. A failed batch does
// not abort the run; its error is collected and reported alongside the count
// of segments that were indexed successfully.
package ingestion
