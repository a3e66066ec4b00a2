package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumo/storefront/config"
	httpDelivery "github.com/lumo/storefront/internal/delivery/http"
	"github.com/lumo/storefront/internal/domain"
	"github.com/lumo/storefront/internal/infrastructure/cache"
	"github.com/lumo/storefront/internal/infrastructure/catalog"
	"github.com/lumo/storefront/internal/infrastructure/logging"
	"github.com/lumo/storefront/internal/infrastructure/supabase"
	"github.com/lumo/storefront/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(logging.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Environment: cfg.Server.Environment,
		Service:     "lumo-backend",
	})

	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.Source).
		Str("cache", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("starting Lumo backend")

	ctx := context.Background()

	catalogRepo, err := newCatalogRepository(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise catalog")
	}

	cacheRepo, err := newCacheRepository(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise cache")
	}
	defer cacheRepo.Close()

	chatService := usecase.NewChatService(
		cacheRepo,
		catalogRepo,
		usecase.ChatServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Chat.EnableDebugLogging,
			Logger:             logger,
		},
	)

	handler := httpDelivery.NewHandler(chatService)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newCatalogRepository(cfg *config.Config, logger zerolog.Logger) (domain.CatalogRepository, error) {
	mapper := catalog.MapperOptions{InferCategories: cfg.Catalog.InferCategories}

	if cfg.Catalog.Source == "file" {
		repo, err := catalog.NewFileRepository(cfg.Catalog.FilePath, mapper)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Catalog.FilePath).Msg("serving catalog from file")
		return repo, nil
	}

	client := supabase.NewClient(supabase.ClientConfig{
		BaseURL:           cfg.Supabase.URL,
		APIKey:            cfg.Supabase.AnonKey,
		Table:             cfg.Supabase.Table,
		RequestsPerSecond: cfg.RateLimit.Supabase,
		Mapper:            mapper,
		Logger:            logger,
	})

	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		logger.Debug().Msg("supabase client debug mode enabled")
	}

	logger.Info().Str("url", cfg.Supabase.URL).Str("table", cfg.Supabase.Table).Msg("serving catalog from supabase")
	return client, nil
}

// cacheStore is a cache that owns a connection or janitor goroutine
type cacheStore interface {
	domain.CacheRepository
	io.Closer
}

func newCacheRepository(ctx context.Context, cfg *config.Config) (cacheStore, error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, nil
}
