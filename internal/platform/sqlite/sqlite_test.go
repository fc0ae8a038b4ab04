package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemoryEnforcesForeignKeys(t *testing.T) {
	db, err := Open("")
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestOpen_FileDatabasePersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commerce.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE marks (id INTEGER PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("INSERT INTO marks (id) VALUES (7)").Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	var count int64
	require.NoError(t, reopened.Table("marks").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
