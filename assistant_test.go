package agenteia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuri-moraes/agente-ia/ai/mock"
	"github.com/yuri-moraes/agente-ia/config"
	"github.com/yuri-moraes/agente-ia/ingestion"
	storagememory "github.com/yuri-moraes/agente-ia/storage/memory"
	vectormemory "github.com/yuri-moraes/agente-ia/vector/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenAIAPIKey:       "sk-test",
		PineconeAPIKey:     "pc-test",
		IndexName:          "smartdevice-manual",
		EmbeddingModel:     config.DefaultEmbeddingModel,
		ChatModel:          config.DefaultChatModel,
		EmbeddingDimension: 8,
		TopK:               3,
		HTTPAddr:           ":0",
	}
}

func newTestAssistant(t *testing.T) (*Assistant, *mock.MockGenerator) {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 8
	generator := mock.NewMockGenerator()

	assistant, err := New(testConfig(),
		WithProvider(mock.NewMockProviderWithServices(embedder, generator)),
		WithVectorStore(vectormemory.NewStore()),
		WithSessionRepository(storagememory.NewSessionRepository()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant, generator
}

func TestAssistantEndToEnd(t *testing.T) {
	assistant, generator := newTestAssistant(t)
	ctx := context.Background()

	// Index a small manual.
	indexer, err := assistant.NewIndexer(ingestion.WithPoolSize(1))
	require.NoError(t, err)
	defer indexer.Release()

	doc := &ingestion.Document{
		Source: "manual.txt",
		Text:   "A bateria do SmartDevice X1 dura até 10 horas de uso contínuo.",
	}
	count, err := indexer.Index(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Ask about it; the indexed segment reaches the prompt.
	generator.Reply = "A bateria dura até 10 horas."
	result, err := assistant.Engine().Turn(ctx, "s1", "A bateria do SmartDevice X1 dura até 10 horas de uso contínuo.")
	require.NoError(t, err)
	assert.True(t, result.ContextFound)
	assert.Equal(t, "A bateria dura até 10 horas.", result.Answer)
	assert.Contains(t, generator.LastRequest().System, "10 horas de uso contínuo")

	// History survives and clears.
	session, err := assistant.Engine().History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)

	require.NoError(t, assistant.Engine().ClearHistory(ctx, "s1"))
	session, err = assistant.Engine().History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)
}

func TestAssistantServerWiring(t *testing.T) {
	assistant, _ := newTestAssistant(t)

	server := assistant.NewServer()
	require.NotNil(t, server)
	assert.NotNil(t, server.App())
}

func TestNewAssistantInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIAPIKey = ""

	_, err := New(cfg)
	assert.Error(t, err)
}
