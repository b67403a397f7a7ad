// Package api exposes the assistant over HTTP.
//
// The surface mirrors the assistant's three operations: POST /chat runs a
// conversation turn, GET /chat/history/:sessionId returns a session's
// timeline and DELETE /chat/history/:sessionId clears it. All responses are
// JSON.
package api
