// Package ioschema implements schema.Manager for the PostgreSQL session
// store. This is an impure I/O package that wraps GORM AutoMigrate
// functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gndash/pkg/db"
	"github.com/gnames/gndash/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the schema.Manager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new schema.Manager.
func NewManager(op db.Operator) schema.Manager {
	return &manager{operator: op}
}

// Migrate creates the sessions table or updates it to the latest
// version.
func (m *manager) Migrate(ctx context.Context) error {
	table := schema.SessionSnapshot{}.TableName()
	existed, err := m.operator.TableExists(ctx, table)
	if err != nil {
		return err
	}

	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err = schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	if existed {
		slog.Info("Updated session table", "table", table)
	} else {
		slog.Info("Created session table", "table", table)
	}
	return nil
}
