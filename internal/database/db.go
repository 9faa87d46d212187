package database

import (
	"fmt"
	"time"

	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Connect opens the SQL backend named by STORE_DRIVER and syncs the schema.
func Connect(cfg config.StoreConfig, dbCfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		if dbCfg.DSN == "" {
			return nil, fmt.Errorf("DB_DSN not set, please configure your database")
		}
		dialector = mysql.Open(dbCfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(dbCfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL backend", cfg.Driver)
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(dbCfg.LogLevel)),
	}

	// 1. Connect (wait for the DB to be ready)
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("failed to connect to database, retrying in 2 seconds")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", connectAttempts, err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("connected to database")

	// 2. Auto-Migrate
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Msg("database schema synced")
	return db, nil
}

// Migrate creates or updates the order ledger, report archive and menu tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderLineItem{},
		&models.Report{},
		&models.MenuItem{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
