package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/crestviewems/supplyline-backend/api/routes"
	"github.com/crestviewems/supplyline-backend/internal/appstate"
	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/internal/inventory"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/internal/users"
	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/db"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/metrics"
	"github.com/crestviewems/supplyline-backend/pkg/migrate"
	"github.com/crestviewems/supplyline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "supplyline-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "supplyline-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	feed := collections.NewRedisFeed(redisClient, logg)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	requestsRepo := requests.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	catalogSvc := catalog.NewService(catalogRepo, feed, logg)
	requestsSvc := requests.NewService(requestsRepo, catalogRepo, dbClient, feed, logg)
	inventorySvc := inventory.NewService(inventoryRepo, feed, logg)
	usersSvc := users.NewService(usersRepo, redisClient, cfg.JWT, cfg.Auth, cfg.Password, logg)

	liveViewMetrics := metrics.NewLiveViewMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	state := appstate.New(appstate.Options{
		CatalogRepo:     catalogRepo,
		RequestsRepo:    requestsRepo,
		Feed:            feed,
		Logger:          logg,
		LiveViewMetrics: liveViewMetrics,
		RebuildDebounce: cfg.LiveView.RebuildDebounce,
	})
	if err := state.Start(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to start live view", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: httpMetrics,
		DBPinger:    dbClient,
		RedisPinger: redisClient,
		Sessions:    redisClient,
		Live:        state,
		Users:       usersSvc,
		Catalog:     catalogSvc,
		Requests:    requestsSvc,
		Inventory:   inventorySvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error draining http server", err)
		}
	}

	// Close the live subscriptions before the redis client goes away.
	if err := state.Close(); err != nil {
		logg.Error(ctx, "error closing live view", err)
	}
}
