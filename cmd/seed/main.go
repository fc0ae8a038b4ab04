package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	"github.com/Apurer/go-gin-commerce-api/internal/app/seed"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
)

func main() {
	file := flag.String("file", "", "fixture file; defaults to SEED_FILE")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	path := *file
	if path == "" {
		path = cfg.SeedFile
	}
	if path == "" {
		log.Fatal("no fixture file given; pass -file or set SEED_FILE")
	}
	logger := platformobservability.NewLogger(log.Writer(), cfg.SlogLevel())

	store, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	if store.Kind == api.StoreMemory {
		log.Fatal("seeding needs POSTGRES_DSN or SQLITE_PATH; in-memory data would be discarded")
	}

	fx, err := seed.LoadFile(path)
	if err != nil {
		log.Fatalf("failed to load fixture: %v", err)
	}
	services := api.NewServices(store, nil)
	sum, err := seed.Apply(ctx, fx, seed.Targets{
		Categories: services.Categories,
		Products:   services.Products,
		Carts:      services.Carts,
	})
	if err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	logger.Info("seed completed", "categories", sum.Categories, "products", sum.Products, "carts", sum.Carts)
}
