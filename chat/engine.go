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

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/storage"
)

// Retriever recovers manual context for a question. Retrieval is best-effort;
// implementations degrade to an empty result instead of returning errors.
type Retriever interface {
	Retrieve(ctx context.Context, query string) core.RetrievalResult
}

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	// Answer is the assistant's reply.
	Answer string
	// ContextFound reports whether any manual context backed the answer.
	ContextFound bool
}

// Engine orchestrates conversation turns. Turns within one session are
// serialized; different sessions run concurrently.
type Engine struct {
	sessions  storage.SessionRepository
	retriever Retriever
	generator ai.Generator
	prompt    *PromptBuilder

	// maxHistory caps how many history messages enter the prompt window.
	// Zero means the whole history is sent. The stored log is never trimmed.
	maxHistory int

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSystemPrompt overrides the default system prompt template.
func WithSystemPrompt(template string) Option {
	return func(e *Engine) error {
		e.prompt = NewPromptBuilder(template)
		return nil
	}
}

// WithMaxHistoryMessages caps the history window included in prompts.
// Zero or negative means unbounded.
func WithMaxHistoryMessages(n int) Option {
	return func(e *Engine) error {
		if n < 0 {
			n = 0
		}
		e.maxHistory = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a conversation engine.
func NewEngine(sessions storage.SessionRepository, retriever Retriever, generator ai.Generator, opts ...Option) (*Engine, error) {
	if sessions == nil {
		return nil, ErrSessionRepositoryRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	e := &Engine{
		sessions:  sessions,
		retriever: retriever,
		generator: generator,
		prompt:    NewPromptBuilder(""),
		locks:     make(map[string]*sync.Mutex),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "chat")

	return e, nil
}

// Turn runs one conversation turn: retrieve context, generate an answer from
// the session's history, then commit the question and the answer together.
// If generation fails nothing is committed and the session log is unchanged.
func (e *Engine) Turn(ctx context.Context, sessionID, query string) (*TurnResult, error) {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	retrieval := e.retriever.Retrieve(ctx, query)
	e.logger.Debug("turn context retrieved",
		"session_id", sessionID, "segments", len(retrieval.Segments))

	req := e.prompt.Build(retrieval.Context, e.window(session.Messages), query)
	answer, err := e.generator.Complete(ctx, req)
	if err != nil {
		e.logger.Error("error generating answer", "session_id", sessionID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	err = e.sessions.Append(ctx, sessionID,
		core.Message{Role: core.RoleHuman, Content: query},
		core.Message{Role: core.RoleAI, Content: answer},
	)
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Answer:       answer,
		ContextFound: retrieval.Context != "",
	}, nil
}

// History returns the session's full message log, oldest first.
func (e *Engine) History(ctx context.Context, sessionID string) (*core.Session, error) {
	return e.sessions.Get(ctx, sessionID)
}

// ClearHistory empties the session's log while keeping the session alive.
func (e *Engine) ClearHistory(ctx context.Context, sessionID string) error {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return err
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return e.sessions.Clear(ctx, sessionID)
}

// window returns the most recent maxHistory messages, or everything when
// unbounded.
func (e *Engine) window(messages []core.Message) []core.Message {
	if e.maxHistory <= 0 || len(messages) <= e.maxHistory {
		return messages
	}
	return messages[len(messages)-e.maxHistory:]
}

// sessionLock returns the mutex serializing turns for one session.
func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[sessionID] = lock
	}
	return lock
}
