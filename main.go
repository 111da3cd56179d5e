package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UmangSachdeva/SalesX/config"
	"github.com/UmangSachdeva/SalesX/handlers"
	"github.com/UmangSachdeva/SalesX/middleware"
	"github.com/UmangSachdeva/SalesX/router"
	"github.com/UmangSachdeva/SalesX/services"
	"github.com/UmangSachdeva/SalesX/store"
	"github.com/UmangSachdeva/SalesX/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := utils.NewLogger("info", os.Stderr)
		boot.Fatal().Err(err).Msg("load configuration")
	}

	logger := utils.NewLogger(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	txStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store")
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	feed := services.NewHTTPFeed(cfg.SeedURL, &http.Client{Timeout: cfg.HTTPTimeout})
	handler := handlers.NewTransactionHandler(
		services.NewReportService(txStore),
		services.NewSeeder(feed, txStore, logger),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Router(handler, middleware.NewMetrics(registry), logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server error")
		return
	}
	logger.Info().Msg("server stopped")
}

// openStore creates the single store handle shared by every component.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	defer cancel()

	client, err := config.ConnectToMongo(connectCtx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}

	mongoStore := store.NewMongoStore(client, cfg.MongoDatabase, cfg.MongoCollection)
	if err := mongoStore.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	logger.Info().Str("database", cfg.MongoDatabase).Str("collection", cfg.MongoCollection).Msg("connected to mongo")

	closeStore := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("disconnect mongo")
		}
	}
	return mongoStore, closeStore, nil
}
