package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

func main() {
	truncate := flag.Bool("truncate", false, "empty all tables after migrating and restart identities")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := platformobservability.NewLogger(log.Writer(), cfg.SlogLevel())
	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	if *truncate {
		if err := platformpostgres.Truncate(ctx, db, migrations.Tables...); err != nil {
			log.Fatalf("failed to truncate tables: %v", err)
		}
	}
	logger.Info("schema migration completed")
}
