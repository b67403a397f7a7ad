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

// Package agenteia assembles the SmartDevice X1 assistant: manual ingestion,
// semantic retrieval, conversational answering and the HTTP surface.
package agenteia

import (
	"log/slog"

	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/ai/openai"
	"github.com/yuri-moraes/agente-ia/api"
	"github.com/yuri-moraes/agente-ia/chat"
	"github.com/yuri-moraes/agente-ia/config"
	"github.com/yuri-moraes/agente-ia/ingestion"
	"github.com/yuri-moraes/agente-ia/search"
	"github.com/yuri-moraes/agente-ia/storage"
	badgerstore "github.com/yuri-moraes/agente-ia/storage/badger"
	"github.com/yuri-moraes/agente-ia/vector"
	"github.com/yuri-moraes/agente-ia/vector/pinecone"
)

// Assistant owns every component of the running application and their
// lifecycles.
type Assistant struct {
	cfg      *config.Config
	backend  *badgerstore.Backend
	sessions storage.SessionRepository
	provider ai.Provider
	store    vector.Store
	engine   *chat.Engine
	logger   *slog.Logger
}

// AssistantOption overrides a default component, mainly for tests and for
// running without external services.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	provider ai.Provider
	store    vector.Store
	sessions storage.SessionRepository
}

// WithProvider injects a custom AI provider.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) { o.provider = provider }
}

// WithVectorStore injects a custom vector store.
func WithVectorStore(store vector.Store) AssistantOption {
	return func(o *assistantOptions) { o.store = store }
}

// WithSessionRepository injects a custom session repository.
func WithSessionRepository(sessions storage.SessionRepository) AssistantOption {
	return func(o *assistantOptions) { o.sessions = sessions }
}

// New assembles an Assistant from configuration. Components not overridden
// by options get their production defaults: an OpenAI provider, a Pinecone
// vector store and a BadgerDB session repository at cfg.SessionDBPath.
func New(cfg *config.Config, opts ...AssistantOption) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &assistantOptions{}
	for _, opt := range opts {
		opt(options)
	}

	a := &Assistant{
		cfg:      cfg,
		provider: options.provider,
		store:    options.store,
		sessions: options.sessions,
		logger:   slog.Default(),
	}

	if a.provider == nil {
		provider, err := openai.NewProvider(ai.NewConfig(
			ai.WithAPIKey(cfg.OpenAIAPIKey),
			ai.WithBaseURL(cfg.OpenAIBaseURL),
			ai.WithEmbeddingModel(cfg.EmbeddingModel),
			ai.WithChatModel(cfg.ChatModel),
		))
		if err != nil {
			return nil, err
		}
		a.provider = provider
	}

	if a.store == nil {
		client, err := pinecone.NewClient(pinecone.Config{APIKey: cfg.PineconeAPIKey})
		if err != nil {
			a.provider.Close()
			return nil, err
		}
		store, err := pinecone.NewStore(client, pinecone.StoreConfig{
			IndexName: cfg.IndexName,
			Cloud:     cfg.IndexCloud,
			Region:    cfg.IndexRegion,
		})
		if err != nil {
			a.provider.Close()
			return nil, err
		}
		a.store = store
	}

	if a.sessions == nil {
		backend, err := badgerstore.OpenBackend(cfg.SessionDBPath, false)
		if err != nil {
			a.provider.Close()
			return nil, err
		}
		sessions, err := badgerstore.NewSessionRepository(backend)
		if err != nil {
			backend.Close()
			a.provider.Close()
			return nil, err
		}
		a.backend = backend
		a.sessions = sessions
	}

	retriever, err := search.NewRetriever(a.store, a.provider.Embedder(),
		search.WithTopK(cfg.TopK))
	if err != nil {
		a.closePartial()
		return nil, err
	}

	engine, err := chat.NewEngine(a.sessions, retriever, a.provider.Generator(),
		chat.WithSystemPrompt(cfg.SystemPrompt),
		chat.WithMaxHistoryMessages(cfg.MaxHistoryMessages),
	)
	if err != nil {
		a.closePartial()
		return nil, err
	}
	a.engine = engine

	return a, nil
}

// Engine returns the conversation engine.
func (a *Assistant) Engine() *chat.Engine {
	return a.engine
}

// SessionRepository returns the session store.
func (a *Assistant) SessionRepository() storage.SessionRepository {
	return a.sessions
}

// VectorStore returns the vector store holding the indexed manual.
func (a *Assistant) VectorStore() vector.Store {
	return a.store
}

// NewIndexer creates an indexer bound to the assistant's vector store and
// embedder.
func (a *Assistant) NewIndexer(opts ...ingestion.Option) (*ingestion.Indexer, error) {
	return ingestion.NewIndexer(a.store, a.provider.Embedder(), a.cfg.EmbeddingDimension, opts...)
}

// NewServer creates the HTTP server for the assistant.
func (a *Assistant) NewServer(opts ...api.Option) *api.Server {
	return api.NewServer(a.engine, a.cfg.HTTPAddr, opts...)
}

// Close releases every component the assistant owns.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.sessions.Close(); err != nil {
		a.logger.Error("error closing session repository", "err", err)
		return err
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (a *Assistant) closePartial() {
	a.provider.Close()
	if a.sessions != nil {
		a.sessions.Close()
	}
	if a.backend != nil {
		a.backend.Close()
	}
}
