// Package db owns the shared gorm handle, schema migration and seed data.
package db

import (
	"fmt"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	applog "github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the postgres connection and applies the pool limits from
// config. Gorm's own query logging stays silent; the repositories log what
// they need through pkg/logger.
func Initialize(cfg *config.DatabaseConfig) error {
	applog.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := configurePool(conn, cfg); err != nil {
		return err
	}

	DB = conn
	applog.Info("Database ready", map[string]interface{}{
		"max_idle_conns": cfg.MaxIdleConns,
		"max_open_conns": cfg.MaxOpenConns,
	})
	return nil
}

func configurePool(conn *gorm.DB, cfg *config.DatabaseConfig) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return nil
}

// Close releases the pool. Safe to call when Initialize never ran.
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

// GetDB returns the shared handle for repository construction.
func GetDB() *gorm.DB {
	return DB
}
