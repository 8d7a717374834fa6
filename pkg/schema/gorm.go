package schema

import (
	"context"

	"gorm.io/gorm"
)

// Manager brings the database schema to the latest version.
type Manager interface {
	Migrate(ctx context.Context) error
}

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&SessionSnapshot{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
