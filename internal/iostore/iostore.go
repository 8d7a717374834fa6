// Package iostore implements dataset.Store backends that keep the dataset
// of every browser session: in memory, in a SQLite file or in PostgreSQL.
package iostore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gndash/pkg/config"
	"github.com/gnames/gndash/pkg/dataset"
)

// New creates the session store selected by store.backend.
func New(ctx context.Context, cfg *config.Config) (dataset.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		path := cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, OpenError(cfg.Store.Backend, err)
		}
		slog.Info("Using sqlite session store", "path", path)
		return NewSQLite(ctx, path)
	case "postgres":
		pg := cfg.Store.Postgres
		slog.Info("Using postgres session store",
			"host", pg.Host, "port", pg.Port, "database", pg.Database)
		return NewPostgres(ctx, &pg)
	default:
		slog.Info("Using in-memory session store")
		return NewMemory(), nil
	}
}
