package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	platformsqlite "github.com/Apurer/go-gin-commerce-api/internal/platform/sqlite"
)

// Store kinds reported by OpenStore.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Store bundles the repositories of both bounded contexts over one backend.
type Store struct {
	Kind       string
	DB         *gorm.DB
	Products   catalogports.ProductRepository
	Categories catalogports.CategoryRepository
	Orders     ordersports.OrderRepository
	Carts      ordersports.CartRepository

	// Idempotency backs inline order placement retries.
	Idempotency ordersports.IdempotencyStore
	cleanup     func()
}

// Close releases the underlying connection, if any.
func (s Store) Close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Ping checks the relational backend. Memory stores are always reachable.
func (s Store) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// OpenStore picks PostgreSQL when POSTGRES_DSN connects, then SQLite when
// SQLITE_PATH is set, and otherwise in-memory repositories. PostgreSQL
// schemas are owned by the migrate command; SQLite is migrated on open.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	if cfg.PostgresDSN != "" {
		db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
		if db != nil {
			logger.Info("repositories configured with postgres")
			return relationalStore(StorePostgres, db, cleanup), nil
		}
		logger.Warn("postgres unavailable, trying next store")
	}
	if cfg.SQLitePath != "" {
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return Store{}, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := migrations.Run(db); err != nil {
			return Store{}, fmt.Errorf("migrate sqlite: %w", err)
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Info("repositories configured with sqlite", slog.String("path", cfg.SQLitePath))
		return relationalStore(StoreSQLite, db, cleanup), nil
	}
	logger.Warn("no database configured, falling back to in-memory repositories")
	return MemoryStore(), nil
}

// MemoryStore returns process-local repositories.
func MemoryStore() Store {
	return Store{
		Kind:        StoreMemory,
		Products:    catalogmemory.NewProductRepository(),
		Categories:  catalogmemory.NewCategoryRepository(),
		Orders:      ordersmemory.NewOrderRepository(),
		Carts:       ordersmemory.NewCartRepository(),
		Idempotency: ordersmemory.NewIdempotencyStore(),
	}
}

func relationalStore(kind string, db *gorm.DB, cleanup func()) Store {
	return Store{
		Kind:        kind,
		DB:          db,
		Products:    catalogpostgres.NewProductRepository(db),
		Categories:  catalogpostgres.NewCategoryRepository(db),
		Orders:      orderspostgres.NewOrderRepository(db),
		Carts:       orderspostgres.NewCartRepository(db),
		Idempotency: orderspostgres.NewIdempotencyStore(db),
		cleanup:     cleanup,
	}
}
