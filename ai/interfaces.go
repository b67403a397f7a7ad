package ai

import (
	"context"

	"github.com/yuri-moraes/agente-ia/core"
)

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Request is the exact structure handed to the generation provider: a system
// instruction with the retrieved context already interpolated, followed by
// the full message history in chronological order.
type Request struct {
	System   string
	Messages []core.Message
}

// Generator produces a single assistant reply for a prompt request.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete sends the system instruction and message history to the model
	// and returns the text of its single reply.
	Complete(ctx context.Context, req Request) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
