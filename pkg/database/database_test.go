package database

import (
	"path/filepath"
	"testing"

	"DirectChat/models"
	"DirectChat/pkg/config"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		DBPath:     filepath.Join(t.TempDir(), "test.db"),
		DBPoolSize: 3,
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)

	require.True(t, db.Migrator().HasTable(&models.User{}))
	require.True(t, db.Migrator().HasTable(&models.Message{}))
	require.True(t, db.Migrator().HasIndex(&models.Message{}, "idx_messages_pair"))
}
