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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	agenteia "github.com/yuri-moraes/agente-ia"
	"github.com/yuri-moraes/agente-ia/config"
	"github.com/yuri-moraes/agente-ia/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "agente-ia",
		Usage: "Assistente de IA para o manual do SmartDevice X1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides HTTP_ADDR)",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Index a manual into the vector store",
				Action:    ingestCommand,
				ArgsUsage: "<manual.txt>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Segment size in bytes",
						Value: ingestion.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Overlap between consecutive segments in bytes",
						Value: ingestion.DefaultChunkOverlap,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Segments per embed-and-upsert batch",
						Value: ingestion.DefaultBatchSize,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question from the command line",
				Action:    askCommand,
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session identifier",
						Value:   "cli",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	assistant, err := agenteia.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	server := assistant.NewServer()

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			slog.Error("error shutting down server", "err", err)
		}
	}()

	return server.Listen()
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one manual file, got %d arguments", c.NArg())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	assistant, err := agenteia.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	doc, err := ingestion.LoadTextFile(c.Args().First())
	if err != nil {
		return err
	}

	indexer, err := assistant.NewIndexer(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithChunker(ingestion.NewChunker(c.Int("chunk-size"), c.Int("chunk-overlap"))),
	)
	if err != nil {
		return err
	}
	defer indexer.Release()

	count, err := indexer.Index(context.Background(), doc)
	if err != nil {
		return fmt.Errorf("indexed %d segments before failing: %w", count, err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d segments from %s\n", count, doc.Source)
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("expected a question")
	}
	question := strings.Join(c.Args().Slice(), " ")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	assistant, err := agenteia.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to assemble assistant: %w", err)
	}
	defer assistant.Close()

	result, err := assistant.Engine().Turn(context.Background(), c.String("session"), question)
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)
	if !result.ContextFound {
		fmt.Fprintln(os.Stderr, "(nenhum contexto do manual foi encontrado)")
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
