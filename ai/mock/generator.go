package mock

import (
	"context"
	"sync"

	"github.com/yuri-moraes/agente-ia/ai"
)

// MockGenerator is a test double for ai.Generator.
// It records every request it receives so tests can assert on the exact
// history and system instruction handed to the model.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Reply is returned.
	CompleteFunc func(ctx context.Context, req ai.Request) (string, error)

	// Reply is the canned answer returned when CompleteFunc is nil.
	Reply string

	mu       sync.Mutex
	requests []ai.Request
}

// NewMockGenerator creates a mock generator with a canned reply.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Reply: "mock reply"}
}

// Complete records the request and returns the injected or canned reply.
func (m *MockGenerator) Complete(ctx context.Context, req ai.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return m.Reply, nil
}

// Requests returns a copy of every request seen so far, in order.
func (m *MockGenerator) Requests() []ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or a zero Request if none.
func (m *MockGenerator) LastRequest() ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return ai.Request{}
	}
	return m.requests[len(m.requests)-1]
}

// CallCount returns the number of Complete calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
