package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/vector"
)

// DefaultBatchSize is how many segments are embedded and upserted per batch.
const DefaultBatchSize = 100

// Indexer orchestrates the indexing of a document into the vector store.
type Indexer struct {
	store     vector.Store
	embedder  ai.Embedder
	chunker   *Chunker
	pool      *ants.Pool
	dimension int
	batchSize int
	logger    *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithBatchSize sets how many segments go into each embed-and-upsert batch.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		ix.batchSize = size
		return nil
	}
}

// WithChunker sets a custom chunker.
func WithChunker(chunker *Chunker) Option {
	return func(ix *Indexer) error {
		if chunker != nil {
			ix.chunker = chunker
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates an Indexer. The dimension is the embedding width the
// vector store index is created with; every embedded segment is validated
// against it before upsert.
func NewIndexer(store vector.Store, embedder ai.Embedder, dimension int, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if dimension < 1 {
		return nil, fmt.Errorf("invalid embedding dimension %d", dimension)
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		store:     store,
		embedder:  embedder,
		chunker:   NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		pool:      pool,
		dimension: dimension,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	ix.logger = ix.logger.With("component", "indexer")
	return ix, nil
}

// Index splits the document, embeds every segment and upserts the vectors.
// The index is created first if it does not exist. Batches run concurrently;
// a failed batch is reported in the returned error but does not stop the
// others. The returned count is the number of segments actually indexed.
func (ix *Indexer) Index(ctx context.Context, doc *Document) (int, error) {
	if doc == nil || doc.Text == "" {
		return 0, ErrEmptyDocument
	}

	chunks := ix.chunker.Split(doc.Text)
	if len(chunks) == 0 {
		return 0, ErrEmptyDocument
	}

	fingerprint := doc.Fingerprint()
	ix.logger.Info("indexing document",
		"source", doc.Source, "segments", len(chunks), "fingerprint", fingerprint)

	if err := ix.store.EnsureIndex(ctx, ix.dimension); err != nil {
		return 0, fmt.Errorf("ensuring index: %w", err)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		indexed  int
		failures []error
	)

	for batchStart := 0; batchStart < len(chunks); batchStart += ix.batchSize {
		batchEnd := batchStart + ix.batchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}
		start, end := batchStart, batchEnd

		wg.Add(1)
		submitErr := ix.pool.Submit(func() {
			defer wg.Done()
			count, err := ix.indexBatch(ctx, chunks[start:end], start, fingerprint)
			mu.Lock()
			defer mu.Unlock()
			indexed += count
			if err != nil {
				failures = append(failures, fmt.Errorf("segments %d-%d: %w", start, end-1, err))
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, fmt.Errorf("segments %d-%d: %w", start, end-1, submitErr))
			mu.Unlock()
		}
	}

	wg.Wait()

	if len(failures) > 0 {
		ix.logger.Error("document indexed with failures",
			"indexed", indexed, "failed_batches", len(failures))
		return indexed, errors.Join(failures...)
	}

	ix.logger.Info("document indexed", "segments", indexed)
	return indexed, nil
}

// indexBatch embeds one batch of chunks and upserts the resulting vectors.
// The offset is the global position of the batch's first chunk; segment IDs
// are derived from it so they stay stable across runs.
func (ix *Indexer) indexBatch(ctx context.Context, chunks []string, offset int, fingerprint string) (int, error) {
	vectors, err := ix.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embedding: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(vectors))
	}

	items := make([]vector.Item, 0, len(chunks))
	for i, text := range chunks {
		segment := core.Segment{
			ID:     fmt.Sprintf("chunk-%d", offset+i),
			Text:   text,
			Vector: vectors[i],
		}
		if err := core.ValidateSegment(segment, ix.dimension); err != nil {
			return 0, err
		}
		items = append(items, vector.Item{
			ID:     segment.ID,
			Values: segment.Vector,
			Metadata: map[string]string{
				"text":            segment.Text,
				"doc_fingerprint": fingerprint,
			},
		})
	}

	if err := ix.store.Upsert(ctx, items); err != nil {
		return 0, fmt.Errorf("upserting: %w", err)
	}
	return len(items), nil
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
