package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/api"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/logging"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"github.com/xylexgaming/xgi-website/internal/repository/file"
	"github.com/xylexgaming/xgi-website/internal/repository/memory"
	"github.com/xylexgaming/xgi-website/internal/repository/mongo"
	"github.com/xylexgaming/xgi-website/internal/repository/postgres"
	"github.com/xylexgaming/xgi-website/internal/service"
	"github.com/xylexgaming/xgi-website/web"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logFile, err := logging.Setup(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.IsProduction(),
	})
	if err != nil {
		logrus.Fatalf("failed to set up logging: %v", err)
	}
	defer logFile.Close()

	// Initialize persistence
	store, err := newStore(cfg)
	if err != nil {
		logrus.Fatalf("failed to create store: %v", err)
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Connect(connectCtx); err != nil {
		if cfg.IsDevelopment() {
			logrus.Fatalf("failed to connect to %s store: %v", cfg.StoreDriver, err)
		}
		// persistence endpoints answer 503 until the store comes back
		logrus.WithError(err).Warnf("%s store unavailable, serving without persistence", cfg.StoreDriver)
	} else {
		logrus.Infof("Connected to %s store", cfg.StoreDriver)
	}
	cancelConnect()

	// Initialize repositories
	repos := repository.NewRepositories(newCatalogRepository(cfg, store), store)

	// Initialize services
	services, err := service.NewServices(repos, cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize services: %v", err)
	}

	// Initialize router
	router := api.NewRouter(services, store, web.Assets(cfg.StaticDir), cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, "xgi-website"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		logrus.Errorf("failed to close store: %v", err)
	}

	logrus.Info("Server stopped")
}

func newStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return mongo.NewStore(cfg.MongoURI, cfg.MongoDatabase), nil
	case config.StorePostgres:
		return postgres.NewStore(postgres.DialectPostgres, cfg.DatabaseURL, gormLogLevel(cfg)), nil
	case config.StoreSQLite:
		return postgres.NewStore(postgres.DialectSQLite, cfg.DatabaseURL, gormLogLevel(cfg)), nil
	case config.StoreMemory:
		logrus.Warn("Using the in-memory store; registrations are lost on restart")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func newCatalogRepository(cfg *config.Config, store repository.Store) repository.CatalogRepository {
	if cfg.CatalogSource == config.CatalogSourceDatabase {
		if gs, ok := store.(*postgres.Store); ok {
			return gs.Catalog()
		}
	}
	return file.NewCatalogRepository(cfg.DataDir)
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
		return logger.Info
	}
	return logger.Warn
}
