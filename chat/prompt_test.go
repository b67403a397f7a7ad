package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuri-moraes/agente-ia/core"
)

func TestBuildInterpolatesContext(t *testing.T) {
	builder := NewPromptBuilder("")

	req := builder.Build("A bateria dura 10 horas.", nil, "Quanto dura a bateria?")

	assert.Contains(t, req.System, "A bateria dura 10 horas.")
	assert.NotContains(t, req.System, ContextPlaceholder)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, core.RoleHuman, req.Messages[0].Role)
	assert.Equal(t, "Quanto dura a bateria?", req.Messages[0].Content)
}

func TestBuildEmptyContext(t *testing.T) {
	builder := NewPromptBuilder("")

	req := builder.Build("", nil, "Qual o preço?")
	// The placeholder is replaced even when nothing was retrieved, so the
	// model sees an empty context block and falls back honestly.
	assert.NotContains(t, req.System, ContextPlaceholder)
}

func TestBuildAppendsHistoryInOrder(t *testing.T) {
	builder := NewPromptBuilder("")
	history := []core.Message{
		{Role: core.RoleHuman, Content: "Primeira pergunta"},
		{Role: core.RoleAI, Content: "Primeira resposta"},
	}

	req := builder.Build("ctx", history, "Segunda pergunta")

	require.Len(t, req.Messages, 3)
	assert.Equal(t, "Primeira pergunta", req.Messages[0].Content)
	assert.Equal(t, "Primeira resposta", req.Messages[1].Content)
	assert.Equal(t, "Segunda pergunta", req.Messages[2].Content)
	assert.Equal(t, core.RoleHuman, req.Messages[2].Role)
}

func TestCustomTemplate(t *testing.T) {
	builder := NewPromptBuilder("Responda usando apenas: {context}")

	req := builder.Build("trecho do manual", nil, "pergunta")
	assert.Equal(t, "Responda usando apenas: trecho do manual", req.System)
}

func TestEmptyTemplateFallsBackToDefault(t *testing.T) {
	builder := NewPromptBuilder("   ")
	req := builder.Build("c", nil, "q")
	assert.True(t, strings.Contains(req.System, "SmartDevice X1"))
}
