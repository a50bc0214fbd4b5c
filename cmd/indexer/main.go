package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/embedding"
	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/pipeline"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/internal/rag/vectorstore"
	"aiact-tutor/pkg/logger"
)

// The indexer builds the document store offline from a pre-chunked JSON
// file. It does not parse or split source documents; chunk extraction
// happens upstream.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	chunksPath := flag.String("chunks", "", "path to the pre-chunked JSON input (required)")
	flag.Parse()

	if *chunksPath == "" {
		log.Fatal("missing required -chunks flag")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("indexer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chunks, err := loadChunks(*chunksPath)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to load chunks: %v", err))
	}
	appLogger.Info(fmt.Sprintf("Loaded %d chunks from %s", len(chunks), *chunksPath))

	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to create embedding client: %v", err))
	}

	store, err := openForIndexing(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to open document store: %v", err))
	}

	indexed, err := pipeline.NewIndexingPipeline(embedder, store).Run(ctx, chunks)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("indexing failed: %v", err))
	}

	appLogger.Info(fmt.Sprintf("Indexed %d chunks", indexed))
}

// loadChunks reads the pre-chunked JSON input file.
func loadChunks(path string) ([]schema.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chunks []schema.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return chunks, nil
}

// openForIndexing creates the store write target. Unlike the server, the
// indexer creates a fresh local index file, stamped with the configured
// embedding identity, or ensures the Milvus collection exists.
func openForIndexing(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (interfaces.Store, error) {
	switch cfg.Store.Backend {
	case "local":
		return vectorstore.CreateLocal(cfg.Store.Path, cfg.Embedding.Provider, cfg.Embedding.Model, logger.New("vectorstore"))
	case "milvus":
		store, err := vectorstore.OpenMilvus(ctx, cfg.Store.Milvus, logger.New("vectorstore"))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureCollection(ctx, cfg.Store.Milvus.Dim); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
