package storage

import (
	"context"

	"github.com/yuri-moraes/agente-ia/core"
)

// SessionRepository provides operations for managing conversation sessions.
// Implementations must be thread-safe and support concurrent access.
type SessionRepository interface {
	// Get retrieves a session by ID. A session that has never been written
	// is returned as an existing session with zero messages; an unseen ID
	// is never an error.
	Get(ctx context.Context, sessionID string) (*core.Session, error)

	// Append atomically adds messages to the end of a session's timeline,
	// creating the session if it does not exist yet. Either all messages
	// are appended or none are.
	Append(ctx context.Context, sessionID string, messages ...core.Message) error

	// Clear removes all messages from a session while preserving the
	// session's identity. Clearing an unseen session is not an error.
	Clear(ctx context.Context, sessionID string) error

	// Close closes the repository and releases resources.
	Close() error
}
