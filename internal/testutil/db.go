// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"DirectChat/pkg/config"
	"DirectChat/pkg/database"

	"gorm.io/gorm"
)

// OpenDB returns a migrated sqlite database living in t.TempDir().
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		DBPath:     filepath.Join(t.TempDir(), "chat.db"),
		DBPoolSize: 1,
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
