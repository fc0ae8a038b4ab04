package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectDSN dials PostgreSQL and returns the DB plus a cleanup function.
// When dsn is blank or the connection fails it logs and returns nil with a
// no-op cleanup so callers can fall back to another store.
func ConnectDSN(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if strings.TrimSpace(dsn) == "" {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set, skipping postgres")
		}
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap postgres connection", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }
}

// TruncateStatement builds a TRUNCATE for the given tables, restarting
// identity sequences and cascading to dependants.
func TruncateStatement(tables ...string) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables to truncate")
	}
	quoted := make([]string, 0, len(tables))
	for _, table := range tables {
		table = strings.TrimSpace(table)
		if table == "" {
			return "", fmt.Errorf("empty table name")
		}
		quoted = append(quoted, pq.QuoteIdentifier(table))
	}
	return "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE", nil
}

// Truncate empties the given tables.
func Truncate(ctx context.Context, db *gorm.DB, tables ...string) error {
	if db == nil {
		return fmt.Errorf("postgres connection not configured")
	}
	stmt, err := TruncateStatement(tables...)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(stmt).Error
}
