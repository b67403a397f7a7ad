// Copyright 2026 Yuri Moraes
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package memory provides an in-memory vector.Store using brute-force cosine
// similarity. It is the reference backend for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/yuri-moraes/agente-ia/vector"
)

// Store is a simple in-memory vector store. Upserts by the same ID overwrite
// the stored item, matching the idempotent re-ingestion contract.
type Store struct {
	mu        sync.RWMutex
	dimension int
	items     map[string]vector.Item
	order     []string
}

var _ vector.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{items: make(map[string]vector.Item)}
}

// EnsureIndex records the index dimension. Calling it again with the same
// dimension is a no-op; an existing index is never recreated.
func (s *Store) EnsureIndex(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", vector.ErrDimensionMismatch, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		s.dimension = dimension
		return nil
	}
	if s.dimension != dimension {
		return fmt.Errorf("%w: index has %d, want %d", vector.ErrDimensionMismatch, s.dimension, dimension)
	}
	return nil
}

// Upsert inserts or overwrites items by ID.
func (s *Store) Upsert(ctx context.Context, items []vector.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return vector.ErrIndexNotFound
	}
	for _, item := range items {
		if len(item.Values) != s.dimension {
			return fmt.Errorf("%w: item %q has %d, want %d",
				vector.ErrDimensionMismatch, item.ID, len(item.Values), s.dimension)
		}
	}
	for _, item := range items {
		if _, exists := s.items[item.ID]; !exists {
			s.order = append(s.order, item.ID)
		}
		s.items[item.ID] = item
	}
	return nil
}

// Query returns up to topK items ranked by cosine similarity, descending.
func (s *Store) Query(ctx context.Context, query []float32, topK int) ([]vector.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension == 0 {
		return nil, vector.ErrIndexNotFound
	}
	if len(query) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d",
			vector.ErrDimensionMismatch, len(query), s.dimension)
	}
	if topK <= 0 {
		topK = 3
	}

	matches := make([]vector.Match, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		matches = append(matches, vector.Match{
			ID:       item.ID,
			Score:    cosineSimilarity(query, item.Values),
			Metadata: item.Metadata,
		})
	}

	slices.SortStableFunc(matches, func(a, b vector.Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
