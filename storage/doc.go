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

// Package storage provides the session persistence layer for the assistant.
//
// It defines the SessionRepository interface that decouples the chat engine
// from any concrete backend. Two implementations are provided: a durable
// BadgerDB backend (storage/badger) and an in-memory backend for tests and
// ephemeral deployments (storage/memory).
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.SessionRepository interface rather
// than concrete types:
//
//	repo, err := badger.NewSessionRepository(backend)
//
// This keeps callers backend-agnostic and lets tests substitute the in-memory
// implementation without modification.
//
// # Data Model
//
// A session is stored as a single value: the MUS-encoded slice of its
// messages, keyed by the caller-supplied session ID. Appends are
// read-modify-write inside one transaction, so concurrent appends to the same
// session never lose messages. A cleared session keeps its key with an empty
// message list, preserving session identity across a clear.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use from multiple
// goroutines.
package storage
