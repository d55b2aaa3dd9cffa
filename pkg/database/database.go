package database

import (
	"fmt"
	"log"
	"time"

	"DirectChat/models"
	"DirectChat/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and bounds its connection pool
// to cfg.DBPoolSize. Callers beyond that limit wait for a free connection.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		dialector = mysql.Open(cfg.MySQLDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBPoolSize)
	sqlDB.SetMaxIdleConns(cfg.DBPoolSize)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	log.Printf("[db] connected driver=%s pool=%d", cfg.DBDriver, cfg.DBPoolSize)
	return db, nil
}

// Migrate creates the users and messages tables if they do not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Message{})
}
