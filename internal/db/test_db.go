package db

import (
	"fmt"

	"github.com/ikkim/landing-studio/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB returns a migrated in-memory SQLite store. Each call gets its
// own database, so tests never share sites or counters.
func SetupTestDB() (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Every pooled connection would otherwise get its own empty database.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return conn, nil
}

// CleanupTestDB closes a store from SetupTestDB, which drops its data.
func CleanupTestDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		logger.Warn("Test store already detached", map[string]interface{}{"error": err.Error()})
		return
	}
	_ = sqlDB.Close()
}
