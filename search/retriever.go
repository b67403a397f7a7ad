package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/vector"
)

// DefaultTopK is how many segments are recovered per question.
const DefaultTopK = 3

// Retriever recovers the manual segments most relevant to a question.
type Retriever struct {
	store    vector.Store
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets how many segments are recovered per question.
// Default is DefaultTopK.
func WithTopK(topK int) Option {
	return func(r *Retriever) error {
		if topK > 0 {
			r.topK = topK
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(store vector.Store, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		store:    store,
		embedder: embedder,
		topK:     DefaultTopK,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "retriever")

	return r, nil
}

// Retrieve recovers the segments most relevant to the question and returns
// them with their texts joined by blank lines, in relevance order.
//
// Retrieval never fails the turn: an embedding error, a store error or an
// empty index all degrade to an empty result so the caller can still answer
// with the fallback message.
func (r *Retriever) Retrieve(ctx context.Context, query string) core.RetrievalResult {
	if strings.TrimSpace(query) == "" {
		return core.RetrievalResult{}
	}

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return core.RetrievalResult{}
	}

	matches, err := r.store.Query(ctx, embedding, r.topK)
	if err != nil {
		r.logger.Error("error querying vector store", "err", err)
		return core.RetrievalResult{}
	}

	segments := make([]core.Segment, 0, len(matches))
	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		text, ok := match.Metadata["text"]
		if !ok || strings.TrimSpace(text) == "" {
			// Segments indexed without their text cannot contribute context
			r.logger.Warn("skipping match without text metadata", "id", match.ID)
			continue
		}
		segments = append(segments, core.Segment{ID: match.ID, Text: text})
		texts = append(texts, text)
	}

	r.logger.Debug("retrieved context segments", "requested", r.topK, "usable", len(segments))

	return core.RetrievalResult{
		Segments: segments,
		Context:  strings.Join(texts, "\n\n"),
	}
}
