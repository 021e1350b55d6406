package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS votes (
		target_type TEXT        NOT NULL,
		target_id   TEXT        NOT NULL,
		voter_id    TEXT        NOT NULL,
		direction   SMALLINT    NOT NULL CHECK (direction IN (-1, 1)),
		weight      INTEGER     NOT NULL CHECK (weight > 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (target_type, target_id, voter_id)
	)`,
	`CREATE INDEX IF NOT EXISTS votes_target_idx ON votes (target_type, target_id)`,
	`CREATE TABLE IF NOT EXISTS evaluation_events (
		id           UUID        PRIMARY KEY,
		scenario     TEXT        NOT NULL,
		flag         TEXT,
		top_pathway  TEXT,
		top_score    INTEGER     NOT NULL,
		match_count  INTEGER     NOT NULL,
		answered     INTEGER     NOT NULL,
		data         JSONB       NOT NULL DEFAULT '{}'::jsonb,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS evaluation_events_created_idx ON evaluation_events (created_at DESC)`,
}

// EnsureSchema creates the votes and evaluation_events tables if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
