package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"aiact-tutor/internal/api"
	"aiact-tutor/internal/cache"
	"aiact-tutor/internal/config"
	"aiact-tutor/internal/embedding"
	"aiact-tutor/internal/llm"
	"aiact-tutor/internal/quiz"
	"aiact-tutor/internal/rag/pipeline"
	"aiact-tutor/internal/rag/vectorstore"
	"aiact-tutor/internal/study"
	"aiact-tutor/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("server")
	appLogger.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := vectorstore.Open(ctx, cfg.Store, logger.New("vectorstore"))
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to open document store: %v", err))
	}
	appLogger.Info("Document store opened")

	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to create embedding client: %v", err))
	}

	// The query embedder must match the one the index was built with.
	// The local backend records its identity; verify before serving.
	if local, ok := store.(*vectorstore.LocalStore); ok {
		provider, model := local.EmbeddingIdentity()
		if provider != cfg.Embedding.Provider || model != cfg.Embedding.Model {
			appLogger.Fatal(fmt.Sprintf(
				"embedding mismatch: index built with %s/%s, configured %s/%s",
				provider, model, cfg.Embedding.Provider, cfg.Embedding.Model))
		}
	}
	appLogger.Info("Embedding client ready")

	generator, err := llm.NewClient(ctx, cfg.Generation)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to create generation client: %v", err))
	}
	appLogger.Info("Generation client ready")

	qa := pipeline.NewQAPipeline(
		pipeline.NewRetriever(embedder, store, logger.New("retriever")),
		generator,
		pipeline.WithTopK(cfg.Retrieval.TopK),
		pipeline.WithTimeout(time.Duration(cfg.Generation.TimeoutSeconds)*time.Second),
	)

	var answerCache *cache.AnswerCache
	if cfg.Cache.Enabled {
		answerCache, err = cache.NewAnswerCache(ctx, cfg.Cache)
		if err != nil {
			appLogger.Fatal(fmt.Sprintf("failed to connect answer cache: %v", err))
		}
		defer answerCache.Close()
		appLogger.Info("Answer cache connected")
	}

	handler := api.NewHandler(qa, quiz.NewBank(), study.NewCatalog(), answerCache)
	router := api.SetupRouter(handler)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting server on " + cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(fmt.Sprintf("server failed: %v", err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("forced shutdown: %v", err))
	}
	appLogger.Info("Server stopped")
}
