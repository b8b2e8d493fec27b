package database

import (
	"restaurant_site/config"

	"gorm.io/gorm"
)

// OpenMemory returns a migrated in-memory SQLite database.
func OpenMemory() (*gorm.DB, error) {
	db, err := Connect(config.Settings{Env: "test", DBDriver: "sqlite", DBPath: ":memory:"})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
