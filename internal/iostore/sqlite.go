package iostore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gnames/gndash/pkg/dataset"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	dataset_id TEXT NOT NULL,
	filename   TEXT,
	snapshot   BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// sqliteStore keeps snapshots in a SQLite file, updated_at is stored as
// Unix nanoseconds.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite session store at path.
func NewSQLite(ctx context.Context, path string) (dataset.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError("sqlite", err)
	}

	// one writer at a time, pragmas then apply to every statement
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, OpenError("sqlite", err)
		}
	}

	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, OpenError("sqlite", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(
	ctx context.Context,
	sessionID string,
) (*dataset.Snapshot, error) {
	q := `UPDATE sessions SET updated_at = ?
	WHERE session_id = ?
	RETURNING snapshot`

	var data []byte
	err := s.db.QueryRowContext(ctx, q, time.Now().UnixNano(), sessionID).
		Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dataset.NotFoundError(sessionID)
	}
	if err != nil {
		return nil, ReadError(sessionID, err)
	}
	return decode(sessionID, data)
}

func (s *sqliteStore) Put(
	ctx context.Context,
	sessionID string,
	snap *dataset.Snapshot,
) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}

	q := `INSERT INTO sessions
		(session_id, dataset_id, filename, snapshot, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (session_id) DO UPDATE SET
		dataset_id = excluded.dataset_id,
		filename = excluded.filename,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, q,
		sessionID, snap.ID, snap.Filename, data, time.Now().UnixNano())
	if err != nil {
		return WriteError(sessionID, err)
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, sessionID string) error {
	q := "DELETE FROM sessions WHERE session_id = ?"
	if _, err := s.db.ExecContext(ctx, q, sessionID); err != nil {
		return WriteError(sessionID, err)
	}
	return nil
}

func (s *sqliteStore) Purge(ctx context.Context, before time.Time) (int, error) {
	q := "DELETE FROM sessions WHERE updated_at < ?"
	res, err := s.db.ExecContext(ctx, q, before.UnixNano())
	if err != nil {
		return 0, WriteError("*", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, WriteError("*", err)
	}
	return int(n), nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
