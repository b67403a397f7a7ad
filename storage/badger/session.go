package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/storage"
)

// SessionRepository implements storage.SessionRepository for BadgerDB.
//
// Each session is stored under a single key holding the MUS-encoded message
// slice. Appends read the current slice, extend it and write it back inside
// one read-write transaction, so a conflicting concurrent append fails and
// can be retried instead of silently dropping messages.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) (storage.SessionRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &SessionRepository{backend: backend}, nil
}

// Close is a no-op; the underlying backend is shared and closed by its owner.
func (r *SessionRepository) Close() error {
	return nil
}

// Get retrieves a session by ID. Unseen sessions come back empty.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var messages []core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		messages, err = r.readMessages(tx, sessionID)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return &core.Session{ID: sessionID, Messages: messages}, nil
}

// Append atomically adds messages to the end of a session's timeline.
func (r *SessionRepository) Append(ctx context.Context, sessionID string, messages ...core.Message) error {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return err
	}
	for _, m := range messages {
		if err := core.ValidateMessage(m); err != nil {
			return err
		}
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(messages) == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := r.readMessages(tx, sessionID)
		if err != nil {
			return err
		}
		value := storage.MarshalMessages(append(existing, messages...))
		if err := tx.Set(makeSessionKey(sessionID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear writes an empty message list, preserving the session's identity.
func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSessionKey(sessionID), storage.MarshalMessages(nil)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readMessages reads a session's message slice within a transaction.
// Returns a nil slice when the key doesn't exist.
func (r *SessionRepository) readMessages(tx *badger.Txn, sessionID string) ([]core.Message, error) {
	item, err := tx.Get(makeSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var messages []core.Message
	err = item.Value(func(val []byte) error {
		var err error
		messages, err = storage.UnmarshalMessages(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
