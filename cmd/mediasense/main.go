package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/bootstrap"
	"github.com/kailas-cloud/mediasense/internal/config"
	logpkg "github.com/kailas-cloud/mediasense/internal/logger"
	"github.com/kailas-cloud/mediasense/internal/metrics"
	chiTransport "github.com/kailas-cloud/mediasense/internal/transport/chi"
	openaiCompl "github.com/kailas-cloud/mediasense/internal/transport/openai"
	completionuc "github.com/kailas-cloud/mediasense/internal/usecase/completion"
	embeddinguc "github.com/kailas-cloud/mediasense/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/mediasense/internal/usecase/health"
	instructionuc "github.com/kailas-cloud/mediasense/internal/usecase/instruction"
	searchuc "github.com/kailas-cloud/mediasense/internal/usecase/search"
	"github.com/kailas-cloud/mediasense/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mediasense API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("embedding_backend", cfg.Embedding.Backend),
	)

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Database unavailable", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Explicit registration, no init()
	metrics.Register()

	backend, backendName, model, err := bootstrap.NewBackend(cfg.Embedding)
	if err != nil {
		logger.Fatal("Invalid embedding backend", zap.Error(err))
	}
	embedder := bootstrap.NewEmbedder(cfg.Embedding, backend, backendName, model, store, logger)
	logger.Info("Embedder created",
		zap.String("backend", backendName),
		zap.String("model", model),
		zap.Int("max_concurrency", cfg.Embedding.MaxConcurrency),
		zap.Bool("cache", cfg.Embedding.Cache.Enabled),
	)

	mediaRepo, instRepo := bootstrap.NewRepos(cfg, store)
	if err := bootstrap.Setup(ctx, mediaRepo, instRepo); err != nil {
		logger.Fatal("Index setup failed", zap.Error(err))
	}

	completer := openaiCompl.NewCompleter(&openaiCompl.Config{
		APIKey:    cfg.Completion.APIKey,
		BaseURL:   cfg.Completion.BaseURL,
		MaxTokens: cfg.Completion.MaxTokens,
		Timeout:   time.Duration(cfg.Completion.TimeoutSec) * time.Second,
		Logger:    logger,
	})

	embeddingSvc := embeddinguc.New(embedder, bootstrap.NewFetcher(cfg.Embedding))
	classifySvc := bootstrap.NewClassifier(cfg.Classify, embedder)
	searchSvc := searchuc.New(mediaRepo, embeddingSvc, classifySvc)
	instructionSvc := instructionuc.New(instRepo)
	completionSvc := completionuc.New(instRepo, completer, cfg.Completion.DefaultModel)
	healthSvc := healthuc.New(store, backend, completer)

	server := chiTransport.NewServer(chiTransport.Services{
		Embedding:    embeddingSvc,
		Search:       searchSvc,
		Classify:     classifySvc,
		Instructions: instructionSvc,
		Completion:   completionSvc,
		Health:       healthSvc,
	}, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(chiTransport.BearerAuth(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
