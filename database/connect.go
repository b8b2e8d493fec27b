package database

import (
	"fmt"
	"log"

	"restaurant_site/config"
	"restaurant_site/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database described by cfg.
func Connect(cfg config.Settings) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Env == "dev" {
		level = logger.Info
	}
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// One connection keeps ":memory:" databases alive and serializes writers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	log.Println("Connection Opened to Database")
	return db, nil
}

// Migrate creates or updates every table the site uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Account{},
		&model.Profile{},
		&model.Reservation{},
		&model.MenuItem{},
		&model.Event{},
		&model.SiteConfig{},
		&model.SiteSetting{},
		&model.Feature{},
		&model.EditableElement{},
	); err != nil {
		return err
	}
	log.Println("Database Migrated")
	return nil
}
