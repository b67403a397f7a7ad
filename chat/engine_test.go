package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/ai/mock"
	"github.com/yuri-moraes/agente-ia/core"
	"github.com/yuri-moraes/agente-ia/storage/memory"
)

// stubRetriever returns a fixed retrieval result.
type stubRetriever struct {
	result core.RetrievalResult
	mu     sync.Mutex
	seen   []string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) core.RetrievalResult {
	s.mu.Lock()
	s.seen = append(s.seen, query)
	s.mu.Unlock()
	return s.result
}

func withContext(text string) *stubRetriever {
	return &stubRetriever{result: core.RetrievalResult{
		Segments: []core.Segment{{ID: "chunk-0", Text: text}},
		Context:  text,
	}}
}

func newTestEngine(t *testing.T, retriever Retriever, generator ai.Generator, opts ...Option) *Engine {
	t.Helper()
	repo := memory.NewSessionRepository()
	t.Cleanup(func() { repo.Close() })
	engine, err := NewEngine(repo, retriever, generator, opts...)
	require.NoError(t, err)
	return engine
}

func TestTurnWithContext(t *testing.T) {
	retriever := withContext("A bateria dura até 10 horas.")
	generator := mock.NewMockGenerator()
	generator.Reply = "A bateria do SmartDevice X1 dura até 10 horas."
	engine := newTestEngine(t, retriever, generator)

	result, err := engine.Turn(context.Background(), "s1", "Quanto dura a bateria?")
	require.NoError(t, err)
	assert.Equal(t, "A bateria do SmartDevice X1 dura até 10 horas.", result.Answer)
	assert.True(t, result.ContextFound)

	// The model saw the retrieved context in the system instruction and the
	// question as the final message.
	req := generator.LastRequest()
	assert.Contains(t, req.System, "A bateria dura até 10 horas.")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "Quanto dura a bateria?", req.Messages[0].Content)

	// Both sides of the exchange were committed.
	session, err := engine.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, core.RoleHuman, session.Messages[0].Role)
	assert.Equal(t, core.RoleAI, session.Messages[1].Role)
}

func TestTurnWithoutContext(t *testing.T) {
	retriever := &stubRetriever{} // nothing retrieved
	generator := mock.NewMockGenerator()
	generator.Reply = "Desculpe, não consigo encontrar essa informação no manual do SmartDevice X1."
	engine := newTestEngine(t, retriever, generator)

	result, err := engine.Turn(context.Background(), "s1", "Qual o sentido da vida?")
	require.NoError(t, err)
	assert.False(t, result.ContextFound)

	// The turn is still recorded, fallback answer included.
	session, err := engine.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)
}

func TestTurnHistoryContinuity(t *testing.T) {
	retriever := withContext("trecho do manual")
	generator := mock.NewMockGenerator()
	engine := newTestEngine(t, retriever, generator)
	ctx := context.Background()

	_, err := engine.Turn(ctx, "s1", "Primeira pergunta")
	require.NoError(t, err)
	_, err = engine.Turn(ctx, "s1", "Segunda pergunta")
	require.NoError(t, err)

	// The second turn's prompt carries the whole first exchange.
	req := generator.LastRequest()
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "Primeira pergunta", req.Messages[0].Content)
	assert.Equal(t, core.RoleAI, req.Messages[1].Role)
	assert.Equal(t, "Segunda pergunta", req.Messages[2].Content)
}

func TestTurnSessionsAreIndependent(t *testing.T) {
	retriever := withContext("trecho")
	generator := mock.NewMockGenerator()
	engine := newTestEngine(t, retriever, generator)
	ctx := context.Background()

	_, err := engine.Turn(ctx, "a", "pergunta de a")
	require.NoError(t, err)
	_, err = engine.Turn(ctx, "b", "pergunta de b")
	require.NoError(t, err)

	// Session b's prompt has no trace of session a.
	req := generator.LastRequest()
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "pergunta de b", req.Messages[0].Content)
}

func TestTurnGenerationFailureCommitsNothing(t *testing.T) {
	retriever := withContext("trecho")
	generator := mock.NewMockGenerator()
	boom := errors.New("model unavailable")
	generator.CompleteFunc = func(ctx context.Context, req ai.Request) (string, error) {
		return "", boom
	}
	engine := newTestEngine(t, retriever, generator)
	ctx := context.Background()

	_, err := engine.Turn(ctx, "s1", "pergunta")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, boom)

	// The failed turn left no partial exchange behind.
	session, err := engine.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)
}

func TestTurnValidation(t *testing.T) {
	engine := newTestEngine(t, &stubRetriever{}, mock.NewMockGenerator())
	ctx := context.Background()

	_, err := engine.Turn(ctx, "", "pergunta")
	assert.ErrorIs(t, err, core.ErrEmptySessionID)

	_, err = engine.Turn(ctx, "s1", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestTurnHistoryWindow(t *testing.T) {
	retriever := withContext("trecho")
	generator := mock.NewMockGenerator()
	engine := newTestEngine(t, retriever, generator, WithMaxHistoryMessages(4))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := engine.Turn(ctx, "s1", fmt.Sprintf("pergunta %d", i))
		require.NoError(t, err)
	}

	// The prompt window holds only the last 4 stored messages plus the
	// current question.
	req := generator.LastRequest()
	require.Len(t, req.Messages, 5)
	assert.Equal(t, "pergunta 2", req.Messages[0].Content)

	// The stored log itself is never trimmed.
	session, err := engine.History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 10)
}

func TestClearHistory(t *testing.T) {
	retriever := withContext("trecho")
	generator := mock.NewMockGenerator()
	engine := newTestEngine(t, retriever, generator)
	ctx := context.Background()

	_, err := engine.Turn(ctx, "s1", "pergunta")
	require.NoError(t, err)
	require.NoError(t, engine.ClearHistory(ctx, "s1"))

	session, err := engine.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)

	// The next turn starts from a clean prompt window.
	_, err = engine.Turn(ctx, "s1", "nova pergunta")
	require.NoError(t, err)
	req := generator.LastRequest()
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "nova pergunta", req.Messages[0].Content)
}

func TestConcurrentTurnsSameSession(t *testing.T) {
	retriever := withContext("trecho")
	generator := mock.NewMockGenerator()
	engine := newTestEngine(t, retriever, generator)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.Turn(ctx, "shared", fmt.Sprintf("pergunta %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Turns serialized per session: 10 complete exchanges, no interleaving
	// within a pair.
	session, err := engine.History(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, session.Messages, 20)
	for i := 0; i < 20; i += 2 {
		assert.Equal(t, core.RoleHuman, session.Messages[i].Role)
		assert.Equal(t, core.RoleAI, session.Messages[i+1].Role)
	}
}

func TestNewEngineValidation(t *testing.T) {
	repo := memory.NewSessionRepository()
	defer repo.Close()

	_, err := NewEngine(nil, &stubRetriever{}, mock.NewMockGenerator())
	assert.ErrorIs(t, err, ErrSessionRepositoryRequired)

	_, err = NewEngine(repo, nil, mock.NewMockGenerator())
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewEngine(repo, &stubRetriever{}, nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}
