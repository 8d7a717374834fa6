// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gndash/internal/iodb"
	"github.com/gnames/gndash/pkg/config"
	"github.com/jackc/pgx/v5"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// Tests never run against a production database.
	TestDatabaseName = "gndash_test"
)

// GetTestPostgresConfig returns PostgreSQL settings for integration tests.
// Defaults come from config.New() and may be overridden with
// GNDASH_STORE_POSTGRES_* environment variables. The database name is
// always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.RequirePostgres(t)
//	    // ... use cfg for database operations
//	}
func GetTestPostgresConfig() *config.PostgresConfig {
	cfg := config.New().Store.Postgres

	if v := os.Getenv("GNDASH_STORE_POSTGRES_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("GNDASH_STORE_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("GNDASH_STORE_POSTGRES_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GNDASH_STORE_POSTGRES_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("GNDASH_STORE_POSTGRES_SSL_MODE"); v != "" {
		cfg.SSLMode = v
	}

	cfg.Database = TestDatabaseName
	return &cfg
}

// RequirePostgres returns the test PostgreSQL settings, skipping the test
// when the test database cannot be reached.
func RequirePostgres(t *testing.T) *config.PostgresConfig {
	t.Helper()
	cfg := GetTestPostgresConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, iodb.DSN(cfg))
	if err != nil {
		t.Skipf("PostgreSQL test database is not reachable: %v", err)
	}
	_ = conn.Close(ctx)
	return cfg
}

// SetupHomeDir creates a temporary home directory and returns a config
// that uses it, so tests never touch ~/.config/gndash.
func SetupHomeDir(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	cfg := config.New()
	opts = append([]config.Option{config.OptHomeDir(t.TempDir())}, opts...)
	cfg.Update(opts)
	return cfg
}
