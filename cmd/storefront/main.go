package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/cihad/fakestore/internal/app"
	"github.com/cihad/fakestore/internal/catalog"
	"github.com/cihad/fakestore/internal/config"
	"github.com/cihad/fakestore/internal/kv"
	"github.com/cihad/fakestore/pkg/bootstrap"
	pkgconfig "github.com/cihad/fakestore/pkg/config"
	"github.com/cihad/fakestore/pkg/config/configloader"
	"github.com/cihad/fakestore/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const serviceName = "storefront"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, sets up cart storage, and starts the HTTP and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	slogger := slog.New(logger.NewContextHandler(bootstrap.NewLogger(cfg.Log.Level).Handler()))
	slog.SetDefault(slogger)

	storage, closeStorage, err := setupStorage(ctx, cfg, slogger)
	if err != nil {
		return err
	}
	defer closeStorage()

	cat := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, slogger)

	deps := app.SetupDependencies(ctx, storage, cat, cfg, slogger)
	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		slogger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		slogger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			slogger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			slogger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupStorage builds the configured cart storage backend. The returned
// close function releases any held connections.
func setupStorage(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case pkgconfig.StoragePostgres:
		if err := bootstrap.RunMigrations(kv.MigrationsFS, kv.MigrationsDir, cfg.Database.URL); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		slogger.Info("Successfully connected to the database!")
		return kv.NewPgStore(dbPool), dbPool.Close, nil

	case pkgconfig.StorageRedis:
		client, err := bootstrap.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slogger.Info("Successfully connected to redis!")
		return kv.NewRedisStore(client), func() {
			if err := client.Close(); err != nil {
				slogger.Error("Failed to close redis client", slog.String("error", err.Error()))
			}
		}, nil

	default:
		slogger.Info("Using in-memory cart storage")
		return kv.NewMemoryStore(), func() {}, nil
	}
}
