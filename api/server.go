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
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/yuri-moraes/agente-ia/chat"
)

// DefaultAllowOrigins matches the front-ends the assistant is served to.
const DefaultAllowOrigins = "http://localhost, http://localhost:8000, http://127.0.0.1:5500"

// Server wires the chat engine to the HTTP surface.
type Server struct {
	app     *fiber.App
	engine  *chat.Engine
	addr    string
	origins string
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAllowOrigins overrides the CORS origin whitelist.
func WithAllowOrigins(origins string) Option {
	return func(s *Server) {
		if origins != "" {
			s.origins = origins
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates the HTTP server for the assistant.
func NewServer(engine *chat.Engine, addr string, opts ...Option) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "SmartDevice X1 Assistant API",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		engine:  engine,
		addr:    addr,
		origins: DefaultAllowOrigins,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "api")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.origins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleRoot)
	s.app.Post("/chat", s.handleChat)
	s.app.Get("/chat/history/:sessionId", s.handleHistory)
	s.app.Delete("/chat/history/:sessionId", s.handleClearHistory)
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving and blocks until shutdown.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
