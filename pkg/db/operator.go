package db

import (
	"context"

	"github.com/gnames/gndash/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the lifecycle of a PostgreSQL connection pool.
// Pool() is exposed for components that run their own SQL, such as the
// postgres session store and the schema manager.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.PostgresConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)
}
