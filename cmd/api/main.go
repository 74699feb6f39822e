package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lmarchal/grocerly-backend/api/controllers"
	"github.com/lmarchal/grocerly-backend/api/routes"
	ingredient "github.com/lmarchal/grocerly-backend/internal/ingredients"
	"github.com/lmarchal/grocerly-backend/internal/planning"
	"github.com/lmarchal/grocerly-backend/internal/pricing"
	recipe "github.com/lmarchal/grocerly-backend/internal/recipes"
	"github.com/lmarchal/grocerly-backend/internal/shopping"
	"github.com/lmarchal/grocerly-backend/pkg/config"
	"github.com/lmarchal/grocerly-backend/pkg/db"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
	"github.com/lmarchal/grocerly-backend/pkg/migrate"
	pkgredis "github.com/lmarchal/grocerly-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	pingers := map[string]controllers.Pinger{"database": dbClient}

	var cache pkgredis.Cache
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cache = redisClient
		pingers["redis"] = redisClient
	}

	ingredientRepo := ingredient.NewRepository(dbClient.DB())
	recipeRepo := recipe.NewRepository(dbClient.DB())
	shoppingRepo := shopping.NewRepository(dbClient.DB())

	ingredientService, err := ingredient.NewService(ingredientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ingredient service", err)
		os.Exit(1)
	}
	recipeService, err := recipe.NewService(recipeRepo, dbClient, ingredientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create recipe service", err)
		os.Exit(1)
	}
	shoppingService, err := shopping.NewService(shoppingRepo, dbClient, recipeRepo, ingredientRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shopping service", err)
		os.Exit(1)
	}
	planningService, err := planning.NewService(recipeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create planning service", err)
		os.Exit(1)
	}

	pricingClient, err := pricing.NewClient(context.Background(), cfg.Pricing, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing client", err)
		os.Exit(1)
	}
	pricingService, err := pricing.NewService(pricingClient, shoppingRepo, ingredientRepo, cache, pricing.Config{
		Currency: cfg.Pricing.Currency,
		CacheTTL: cfg.Pricing.CacheTTL,
	}, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Registry:    prometheus.NewRegistry(),
			Pingers:     pingers,
			Ingredients: ingredientService,
			Recipes:     recipeService,
			Shopping:    shoppingService,
			Planning:    planningService,
			Pricing:     pricingService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
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
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
