// Package vector defines the vector-store abstraction used for semantic
// retrieval, along with an in-memory reference backend (vector/memory) and a
// Pinecone backend (vector/pinecone).
package vector

import "context"

// Item is a vector with its metadata, ready to be upserted. The "text" key
// of Metadata carries the segment text and must round-trip through Query.
type Item struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// Match is one query result. Matches are returned in descending similarity
// order as ranked by the backend; no secondary ranking is applied.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// Store is a nearest-neighbor index over embedding vectors.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// EnsureIndex makes sure the target index exists with the given dimension
	// and cosine similarity metric, creating it if absent. Existing indexes
	// are never recreated.
	EnsureIndex(ctx context.Context, dimension int) error

	// Upsert inserts or overwrites the given items by ID.
	Upsert(ctx context.Context, items []Item) error

	// Query returns up to topK nearest matches for the vector, with metadata
	// attached, ordered by descending similarity.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
