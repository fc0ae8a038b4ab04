package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	commerceserver "github.com/Apurer/go-gin-commerce-api/go"

	"github.com/Apurer/go-gin-commerce-api/internal/app/seed"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
)

const serviceName = "commerce-api"

// Run boots the commerce HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithEnvironment(cfg.Environment),
		platformobservability.WithLogFile(cfg.LogFile),
		platformobservability.WithLogLevel(cfg.SlogLevel()),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	services := NewServices(store, instruments)

	if cfg.SeedFile != "" {
		if err := seedFromFile(ctx, cfg.SeedFile, services, logger); err != nil {
			return err
		}
	}

	var placement ordersports.OrderPlacement = orderworkflows.NewInlineOrderPlacement(services.Orders,
		orderworkflows.WithIdempotencyStore(store.Idempotency), orderworkflows.WithPlacementLogger(logger))
	if temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = orderworkflows.NewTemporalOrderPlacement(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := commerceserver.NewRouterWithGinEngine(engine, Handlers(services, placement, store))

	addr := ":" + cfg.Port
	server := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("commerce API listening", slog.String("addr", addr), slog.String("store", store.Kind))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("commerce API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// Handlers maps services onto the HTTP handler set.
func Handlers(services Services, placement ordersports.OrderPlacement, store Store) commerceserver.ApiHandleFunctions {
	return commerceserver.ApiHandleFunctions{
		ProductAPI:  commerceserver.NewProductAPI(services.Products),
		CategoryAPI: commerceserver.NewCategoryAPI(services.Categories),
		OrderAPI:    commerceserver.NewOrderAPI(services.Orders, placement),
		CartAPI:     commerceserver.NewCartAPI(services.Carts),
		HealthAPI: commerceserver.NewHealthAPI(map[string]commerceserver.HealthCheck{
			"db": store.Ping,
		}),
	}
}

func seedFromFile(ctx context.Context, path string, services Services, logger *slog.Logger) error {
	fx, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	sum, err := seed.Apply(ctx, fx, seed.Targets{
		Categories: services.Categories,
		Products:   services.Products,
		Carts:      services.Carts,
	})
	if err != nil {
		return errors.Join(fmt.Errorf("seed %s", path), err)
	}
	logger.Info("seed data loaded",
		slog.Int("categories", sum.Categories),
		slog.Int("products", sum.Products),
		slog.Int("carts", sum.Carts),
	)
	return nil
}
