// Package sqlite opens embedded SQLite databases through GORM. It backs the
// relational repositories when no PostgreSQL DSN is configured and in tests.
package sqlite

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryDSN = "file::memory:?_foreign_keys=on"

// Open opens the database at path with foreign keys enforced. An empty path
// or ":memory:" yields a private in-memory database pinned to one connection.
func Open(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	inMemory := path == "" || path == ":memory:"
	dsn := memoryDSN
	if !inMemory {
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
