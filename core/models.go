package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Role identifies the author of a chat message.
type Role int

const (
	// RoleHuman represents the human user.
	RoleHuman Role = iota + 1
	// RoleAI represents the AI assistant.
	RoleAI
)

// WireName returns the role name used on the API surface ("human" or "ai").
func (r Role) WireName() string {
	if r == RoleAI {
		return "ai"
	}
	return "human"
}

// Message is a single entry in a conversation. Messages are immutable once
// appended to a session.
type Message struct {
	Role    Role
	Content string
}

// Session is a durable, append-only conversation timeline identified by an
// opaque caller-supplied string. Sessions are created lazily on first use and
// survive an explicit clear with an empty message list.
type Session struct {
	ID       string
	Messages []Message
}

// Segment is an indexed slice of the source document. Immutable once indexed.
type Segment struct {
	ID     string
	Text   string
	Vector []float32
}

// RetrievalResult holds the segments recovered for one query, in the vector
// store's relevance order, plus their concatenated text. It is ephemeral and
// never persisted.
type RetrievalResult struct {
	Segments []Segment
	Context  string
}

// Fingerprint produces a short, stable hex digest of text content using
// BLAKE2b. Identical document revisions always produce the same fingerprint,
// which is attached to every segment upserted from that revision.
func Fingerprint(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
