// Package openai implements the ai interfaces on top of OpenAI-compatible
// APIs through langchaingo. It works against api.openai.com as well as local
// compatible servers (Ollama, vLLM, LocalAI) via the BaseURL override.
package openai
