package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "commerce-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithEnvironment(cfg.Environment),
		platformobservability.WithLogFile(cfg.LogFile),
		platformobservability.WithLogLevel(cfg.SlogLevel()),
	)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	if store.Kind == api.StoreMemory {
		logger.Warn("worker is using in-memory repositories; orders are not visible to the API process")
	}
	services := api.NewServices(store, instruments)
	activities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := api.ConnectTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.SaveOrder, activity.RegisterOptions{Name: orderactivities.SaveOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
