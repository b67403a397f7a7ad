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

package chat

import (
	"strings"

	"github.com/yuri-moraes/agente-ia/ai"
	"github.com/yuri-moraes/agente-ia/core"
)

// ContextPlaceholder marks where the retrieved manual context is inserted
// into the system instruction.
const ContextPlaceholder = "{context}"

// DefaultSystemPrompt is the assistant's system instruction. It pins the
// assistant to the manual's content and tells it to lean on the session
// history for follow-up questions.
const DefaultSystemPrompt = `Você é um assistente prestativo para o SmartDevice X1 com memória completa das conversas.

Use as seguintes informações de contexto para responder às perguntas do usuário:
{context}

INSTRUÇÕES IMPORTANTES:
1. SEMPRE consulte o histórico completo da conversa antes de responder.
2. Se o usuário perguntar sobre algo que já foi discutido, refira-se especificamente à conversa anterior.
3. Mantenha consistência com todas as respostas anteriores.
4. Se a pergunta não puder ser respondida com base no contexto fornecido, diga 'Desculpe, não consigo encontrar essa informação no manual do SmartDevice X1.'
5. Seja conversacional e demonstre que você lembra das interações anteriores.`

// PromptBuilder assembles the generation request for a conversation turn.
type PromptBuilder struct {
	template string
}

// NewPromptBuilder creates a PromptBuilder with the given system prompt
// template. An empty template falls back to DefaultSystemPrompt. The
// template should contain ContextPlaceholder; without it the retrieved
// context never reaches the model.
func NewPromptBuilder(template string) *PromptBuilder {
	if strings.TrimSpace(template) == "" {
		template = DefaultSystemPrompt
	}
	return &PromptBuilder{template: template}
}

// Build produces the request for one turn: the system instruction with the
// retrieved context interpolated, the history window in chronological order,
// and the current question as the final message.
func (b *PromptBuilder) Build(contextText string, history []core.Message, query string) ai.Request {
	messages := make([]core.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleHuman, Content: query})

	return ai.Request{
		System:   strings.ReplaceAll(b.template, ContextPlaceholder, contextText),
		Messages: messages,
	}
}
