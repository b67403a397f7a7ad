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


package pinecone

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yuri-moraes/agente-ia/vector"
)

const readyPollInterval = 2 * time.Second

// StoreConfig configures a Pinecone-backed vector.Store.
type StoreConfig struct {
	IndexName string
	// Cloud and Region place the serverless index when it has to be created.
	Cloud  string
	Region string
	// ReadyTimeout bounds how long EnsureIndex waits for a newly created
	// index to become ready. Default: 2 minutes.
	ReadyTimeout time.Duration
}

// Store implements vector.Store on a single Pinecone index.
type Store struct {
	client Client
	cfg    StoreConfig
	logger *slog.Logger

	mu   sync.RWMutex
	host string
}

var _ vector.Store = (*Store)(nil)

// NewStore creates a Pinecone-backed store for the named index.
func NewStore(client Client, cfg StoreConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("pinecone client required")
	}
	if cfg.IndexName == "" {
		return nil, fmt.Errorf("index name required")
	}
	if cfg.Cloud == "" {
		cfg.Cloud = "aws"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = 2 * time.Minute
	}
	return &Store{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "pinecone-store", "index", cfg.IndexName),
	}, nil
}

// EnsureIndex checks for the index and creates it with the given dimension
// and cosine metric when absent. An existing index is never recreated.
func (s *Store) EnsureIndex(ctx context.Context, dimension int) error {
	desc, err := s.client.DescribeIndex(ctx, s.cfg.IndexName)
	if err == nil {
		s.setHost(desc.Host)
		s.logger.Debug("index already exists", "host", desc.Host)
		return nil
	}
	if !IsNotFound(err) {
		return err
	}

	s.logger.Info("creating index", "dimension", dimension, "metric", "cosine")
	_, err = s.client.CreateIndex(ctx, CreateIndexRequest{
		Name:      s.cfg.IndexName,
		Dimension: dimension,
		Metric:    "cosine",
		Spec: IndexSpec{Serverless: ServerlessSpec{
			Cloud:  s.cfg.Cloud,
			Region: s.cfg.Region,
		}},
	})
	if err != nil {
		return err
	}

	return s.waitReady(ctx)
}

// waitReady polls DescribeIndex until the index reports ready.
func (s *Store) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(s.cfg.ReadyTimeout)
	for {
		desc, err := s.client.DescribeIndex(ctx, s.cfg.IndexName)
		if err == nil && desc.Status.Ready {
			s.setHost(desc.Host)
			return nil
		}
		if err != nil && !IsNotFound(err) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", vector.ErrIndexNotReady, s.cfg.IndexName)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

// Upsert writes items to the index.
func (s *Store) Upsert(ctx context.Context, items []vector.Item) error {
	host, err := s.indexHost(ctx)
	if err != nil {
		return err
	}

	vectors := make([]Vector, 0, len(items))
	for _, item := range items {
		metadata := make(map[string]any, len(item.Metadata))
		for k, v := range item.Metadata {
			metadata[k] = v
		}
		vectors = append(vectors, Vector{ID: item.ID, Values: item.Values, Metadata: metadata})
	}

	_, err = s.client.UpsertVectors(ctx, host, UpsertRequest{Vectors: vectors})
	return err
}

// Query returns the topK nearest matches with metadata attached. Metadata
// values of unexpected (non-string) types are dropped per key.
func (s *Store) Query(ctx context.Context, query []float32, topK int) ([]vector.Match, error) {
	host, err := s.indexHost(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Query(ctx, host, QueryRequest{
		Vector:          query,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]vector.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		metadata := make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			str, ok := v.(string)
			if !ok {
				s.logger.Warn("dropping non-string metadata value", "id", m.ID, "key", k)
				continue
			}
			metadata[k] = str
		}
		matches = append(matches, vector.Match{
			ID:       m.ID,
			Score:    float32(m.Score),
			Metadata: metadata,
		})
	}
	return matches, nil
}

// indexHost resolves and caches the data-plane host. A missing index at
// query time is an operator error, not a degradable condition.
func (s *Store) indexHost(ctx context.Context) (string, error) {
	s.mu.RLock()
	host := s.host
	s.mu.RUnlock()
	if host != "" {
		return host, nil
	}

	desc, err := s.client.DescribeIndex(ctx, s.cfg.IndexName)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", vector.ErrIndexNotFound, s.cfg.IndexName)
		}
		return "", err
	}
	s.setHost(desc.Host)
	return desc.Host, nil
}

func (s *Store) setHost(host string) {
	s.mu.Lock()
	s.host = host
	s.mu.Unlock()
}
