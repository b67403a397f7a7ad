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

// Package memory provides an in-memory storage.SessionRepository for tests
// and ephemeral deployments. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/storage"
)

// SessionRepository keeps all sessions in a map guarded by a RWMutex.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]core.Message
	closed   bool
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates an empty in-memory repository.
func NewSessionRepository() storage.SessionRepository {
	return &SessionRepository{
		sessions: make(map[string][]core.Message),
	}
}

// Get returns the session's messages. An unseen ID yields a session with
// zero messages, never an error.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, storage.ErrStorageClosed
	}

	return &core.Session{
		ID:       sessionID,
		Messages: slices.Clone(r.sessions[sessionID]),
	}, nil
}

// Append adds messages to the end of the session's timeline.
func (r *SessionRepository) Append(ctx context.Context, sessionID string, messages ...core.Message) error {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return err
	}
	for _, m := range messages {
		if err := core.ValidateMessage(m); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return storage.ErrStorageClosed
	}

	r.sessions[sessionID] = append(r.sessions[sessionID], messages...)
	return nil
}

// Clear empties the session while keeping its entry in the map.
func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return storage.ErrStorageClosed
	}

	r.sessions[sessionID] = nil
	return nil
}

// Close marks the repository as closed. Further operations fail with
// storage.ErrStorageClosed.
func (r *SessionRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.sessions = nil
	return nil
}
