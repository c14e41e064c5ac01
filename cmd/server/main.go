package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/poolexpert/concierge/internal/llm"
	"github.com/poolexpert/concierge/internal/ratelimit"
	"github.com/poolexpert/concierge/internal/relay"
	"github.com/poolexpert/concierge/internal/server"
	"github.com/poolexpert/concierge/internal/storage"
	"github.com/poolexpert/concierge/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize model backend
	client := llm.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)

	// Initialize rate limiter
	limiter := ratelimit.NewSlidingWindow(
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)

	// Initialize relay and HTTP server
	svc := relay.NewService(client, limiter, store, logger)
	handler := server.New(svc, store, logger, cfg.Server.Dev)

	logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
