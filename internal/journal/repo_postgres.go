package journal

import (
	"context"
	"database/sql"
	"fmt"

	"voicemail-console/pkg/utils"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS journal_events (
	id            TEXT PRIMARY KEY,
	store         TEXT NOT NULL,
	op            TEXT NOT NULL,
	entity_id     TEXT NOT NULL DEFAULT '',
	outcome       TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	actor_user_id TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
)`

const createIndexSQL = `CREATE INDEX IF NOT EXISTS journal_events_created_at_idx ON journal_events (created_at)`

const insertSQL = `
INSERT INTO journal_events (id, store, op, entity_id, outcome, error, actor_user_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// PostgresRepo appends to journal_events. Rows are insert-only.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

// EnsureSchema creates the table and index if missing.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	return utils.WithTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
			return fmt.Errorf("create journal table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, createIndexSQL); err != nil {
			return fmt.Errorf("create journal index: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, insertSQL,
		e.ID, e.Store, e.Op, e.EntityID, string(e.Outcome), e.Error, e.ActorUserID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert journal event: %w", err)
	}
	return nil
}
