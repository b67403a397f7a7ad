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

package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/yuri-moraes/agente-ia/core"
)

var validate = validator.New()

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
}

// chatResponse is the reply of POST /chat.
type chatResponse struct {
	Answer       string `json:"answer"`
	ContextFound bool   `json:"context_found"`
	SessionID    string `json:"session_id"`
}

// historyMessage is one entry of a session's timeline on the wire.
type historyMessage struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// historyResponse is the reply of GET /chat/history/:sessionId.
type historyResponse struct {
	SessionID     string           `json:"session_id"`
	Messages      []historyMessage `json:"messages"`
	TotalMessages int              `json:"total_messages"`
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Bem-vindo à API do Assistente SmartDevice X1!",
	})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "corpo da requisição inválido")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "query e session_id são obrigatórios")
	}

	result, err := s.engine.Turn(c.UserContext(), req.SessionID, req.Query)
	if err != nil {
		if isClientError(err) {
			return badRequest(c, err.Error())
		}
		s.logger.Error("error processing chat turn", "session_id", req.SessionID, "err", err)
		return internalError(c, fmt.Sprintf("Erro interno no servidor: %s", err))
	}

	return c.JSON(chatResponse{
		Answer:       result.Answer,
		ContextFound: result.ContextFound,
		SessionID:    req.SessionID,
	})
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	session, err := s.engine.History(c.UserContext(), sessionID)
	if err != nil {
		if isClientError(err) {
			return badRequest(c, err.Error())
		}
		s.logger.Error("error retrieving history", "session_id", sessionID, "err", err)
		return internalError(c, fmt.Sprintf("Erro ao recuperar histórico: %s", err))
	}

	messages := make([]historyMessage, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = historyMessage{Content: m.Content, Type: m.Role.WireName()}
	}

	return c.JSON(historyResponse{
		SessionID:     sessionID,
		Messages:      messages,
		TotalMessages: len(messages),
	})
}

func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	if err := s.engine.ClearHistory(c.UserContext(), sessionID); err != nil {
		if isClientError(err) {
			return badRequest(c, err.Error())
		}
		s.logger.Error("error clearing history", "session_id", sessionID, "err", err)
		return internalError(c, fmt.Sprintf("Erro ao limpar histórico: %s", err))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Histórico da sessão %s foi limpo com sucesso", sessionID),
	})
}

// isClientError reports whether the failure was caused by the request
// itself rather than the backend.
func isClientError(err error) bool {
	return errors.Is(err, core.ErrEmptySessionID) ||
		errors.Is(err, core.ErrEmptyQuery) ||
		errors.Is(err, core.ErrEmptyContent)
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}

func internalError(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": detail})
}
