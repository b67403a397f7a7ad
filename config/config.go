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

// Package config loads the assistant's runtime settings from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults mirror the values the assistant was first deployed with.
const (
	DefaultIndexName      = "smartdevice-manual"
	DefaultEmbeddingModel = "text-embedding-ada-002"
	DefaultChatModel      = "gpt-4o"
	DefaultDimension      = 1536
	DefaultTopK           = 3
	DefaultHTTPAddr       = ":8000"
	DefaultSessionDBPath  = "data/sessions"
	DefaultIndexCloud     = "aws"
	DefaultIndexRegion    = "us-east-1"
)

// Config holds every runtime setting of the assistant.
type Config struct {
	// OpenAIAPIKey authenticates against the OpenAI API. Required.
	OpenAIAPIKey string
	// OpenAIBaseURL overrides the OpenAI endpoint (for proxies or
	// compatible servers). Empty means the official endpoint.
	OpenAIBaseURL string
	// PineconeAPIKey authenticates against Pinecone. Required unless the
	// in-memory vector store is selected.
	PineconeAPIKey string

	// IndexName is the Pinecone index holding the manual.
	IndexName string
	// IndexCloud and IndexRegion place the serverless index.
	IndexCloud  string
	IndexRegion string

	// EmbeddingModel and ChatModel name the OpenAI models in use.
	EmbeddingModel string
	ChatModel      string
	// EmbeddingDimension is the vector width of the embedding model.
	EmbeddingDimension int
	// TopK is how many manual segments back each answer.
	TopK int

	// SystemPrompt overrides the built-in system instruction when set.
	// It should contain the {context} placeholder.
	SystemPrompt string
	// MaxHistoryMessages caps the history window sent to the model.
	// Zero means unbounded.
	MaxHistoryMessages int

	// HTTPAddr is the listen address of the API server.
	HTTPAddr string
	// SessionDBPath is where the session database lives on disk.
	SessionDBPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win
// over it.
func Load() (*Config, error) {
	// Ignore a missing .env; the environment may be fully set already
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		PineconeAPIKey:     os.Getenv("PINECONE_API_KEY"),
		IndexName:          getEnv("PINECONE_INDEX_NAME", DefaultIndexName),
		IndexCloud:         getEnv("PINECONE_CLOUD", DefaultIndexCloud),
		IndexRegion:        getEnv("PINECONE_REGION", DefaultIndexRegion),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel),
		ChatModel:          getEnv("LLM_MODEL", DefaultChatModel),
		SystemPrompt:       os.Getenv("SYSTEM_PROMPT"),
		HTTPAddr:           getEnv("HTTP_ADDR", DefaultHTTPAddr),
		SessionDBPath:      getEnv("SESSION_DB_PATH", DefaultSessionDBPath),
	}

	var err error
	if cfg.EmbeddingDimension, err = getEnvInt("EMBEDDING_DIMENSION", DefaultDimension); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getEnvInt("TOP_K", DefaultTopK); err != nil {
		return nil, err
	}
	if cfg.MaxHistoryMessages, err = getEnvInt("MAX_HISTORY_MESSAGES", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can actually run the assistant.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.PineconeAPIKey == "" {
		return errors.New("PINECONE_API_KEY is required")
	}
	if c.IndexName == "" {
		return errors.New("PINECONE_INDEX_NAME cannot be empty")
	}
	if c.EmbeddingDimension < 1 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	if c.TopK < 1 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxHistoryMessages < 0 {
		return fmt.Errorf("MAX_HISTORY_MESSAGES cannot be negative, got %d", c.MaxHistoryMessages)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
