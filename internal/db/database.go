package db

import (
	"fmt"
	"time"

	"github.com/ikkim/landing-studio/config"
	appLogger "github.com/ikkim/landing-studio/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Site documents are written in bursts by editors and read through the page
// cache, so a small pool is enough.
const (
	maxIdleConns    = 5
	maxOpenConns    = 25
	connMaxLifetime = 30 * time.Minute
)

var DB *gorm.DB

// Initialize opens the postgres pool that stores sites and metric counters.
// Query logging stays off; failures surface through the request logger.
func Initialize(cfg *config.DatabaseConfig) error {
	fields := map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
	}

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open postgres %s/%s: %w", cfg.Host, cfg.DBName, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	DB = conn
	fields["max_open_conns"] = maxOpenConns
	appLogger.Info("Site store connected", fields)
	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the pool opened by Initialize.
func GetDB() *gorm.DB {
	return DB
}
