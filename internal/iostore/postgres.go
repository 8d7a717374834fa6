package iostore

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/gndash/internal/iodb"
	"github.com/gnames/gndash/internal/ioschema"
	"github.com/gnames/gndash/pkg/config"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/db"
	"github.com/jackc/pgx/v5"
)

// pgStore keeps snapshots in the sessions table created by
// schema.SessionSnapshot.
type pgStore struct {
	op db.Operator
}

// NewPostgres connects to PostgreSQL and migrates the sessions table.
func NewPostgres(
	ctx context.Context,
	cfg *config.PostgresConfig,
) (dataset.Store, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	if err := ioschema.NewManager(op).Migrate(ctx); err != nil {
		op.Close()
		return nil, err
	}

	return &pgStore{op: op}, nil
}

func (p *pgStore) Get(
	ctx context.Context,
	sessionID string,
) (*dataset.Snapshot, error) {
	q := `UPDATE sessions SET updated_at = $2
	WHERE session_id = $1
	RETURNING snapshot`

	var data []byte
	err := p.op.Pool().QueryRow(ctx, q, sessionID, time.Now().UTC()).
		Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, dataset.NotFoundError(sessionID)
	}
	if err != nil {
		return nil, ReadError(sessionID, err)
	}
	return decode(sessionID, data)
}

func (p *pgStore) Put(
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
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (session_id) DO UPDATE SET
		dataset_id = EXCLUDED.dataset_id,
		filename = EXCLUDED.filename,
		snapshot = EXCLUDED.snapshot,
		updated_at = EXCLUDED.updated_at`

	_, err = p.op.Pool().Exec(ctx, q,
		sessionID, snap.ID, snap.Filename, data, time.Now().UTC())
	if err != nil {
		return WriteError(sessionID, err)
	}
	return nil
}

func (p *pgStore) Delete(ctx context.Context, sessionID string) error {
	q := "DELETE FROM sessions WHERE session_id = $1"
	if _, err := p.op.Pool().Exec(ctx, q, sessionID); err != nil {
		return WriteError(sessionID, err)
	}
	return nil
}

func (p *pgStore) Purge(ctx context.Context, before time.Time) (int, error) {
	q := "DELETE FROM sessions WHERE updated_at < $1"
	tag, err := p.op.Pool().Exec(ctx, q, before.UTC())
	if err != nil {
		return 0, WriteError("*", err)
	}
	return int(tag.RowsAffected()), nil
}

func (p *pgStore) Close() error {
	return p.op.Close()
}
