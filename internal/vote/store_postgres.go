package vote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/pathfinder/internal/platform/database"
	"github.com/p-n-ai/pathfinder/internal/platform/storage"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store. Writes for one (target, voter)
// pair are serialised with a transaction-scoped advisory lock.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed vote store. The votes table
// must exist; see database.EnsureSchema.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Score(ctx context.Context, t Target) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var total int64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(direction * weight), 0)
		 FROM votes
		 WHERE target_type = $1 AND target_id = $2`,
		t.Type, t.ID,
	).Scan(&total)
	if err != nil {
		return 0, storage.Unavailable("vote score", err)
	}
	return int(total), nil
}

func (s *PostgresStore) Direction(ctx context.Context, t Target, voterID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	direction, err := currentDirection(ctx, s.pool, t, voterID)
	if err != nil {
		return None, storage.Unavailable("vote direction", err)
	}
	return direction, nil
}

func (s *PostgresStore) SetVote(ctx context.Context, t Target, voterID string, direction, weight int) error {
	if !ValidDirection(direction) {
		return ErrInvalidDirection
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, t, voterID); err != nil {
			return err
		}
		return writeVote(ctx, tx, t, voterID, direction, weight)
	})
	return storage.Unavailable("set vote", err)
}

func (s *PostgresStore) Toggle(ctx context.Context, t Target, voterID string, direction, weight int) (int, error) {
	if !ValidDirection(direction) {
		return None, ErrInvalidDirection
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	result := direction
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, t, voterID); err != nil {
			return err
		}
		current, err := currentDirection(ctx, tx, t, voterID)
		if err != nil {
			return err
		}
		if current == direction {
			result = None
		}
		return writeVote(ctx, tx, t, voterID, result, weight)
	})
	if err != nil {
		return None, storage.Unavailable("toggle vote", err)
	}
	return result, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func currentDirection(ctx context.Context, q querier, t Target, voterID string) (int, error) {
	var direction int
	err := q.QueryRow(ctx,
		`SELECT direction FROM votes
		 WHERE target_type = $1 AND target_id = $2 AND voter_id = $3`,
		t.Type, t.ID, voterID,
	).Scan(&direction)
	if errors.Is(err, pgx.ErrNoRows) {
		return None, nil
	}
	if err != nil {
		return None, fmt.Errorf("select vote: %w", err)
	}
	return direction, nil
}

func lockPair(ctx context.Context, tx pgx.Tx, t Target, voterID string) error {
	key := t.Type + "\x00" + t.ID + "\x00" + voterID
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock vote: %w", err)
	}
	return nil
}

func writeVote(ctx context.Context, tx pgx.Tx, t Target, voterID string, direction, weight int) error {
	if direction == None {
		if _, err := tx.Exec(ctx,
			`DELETE FROM votes
			 WHERE target_type = $1 AND target_id = $2 AND voter_id = $3`,
			t.Type, t.ID, voterID,
		); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		return nil
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO votes (target_type, target_id, voter_id, direction, weight)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (target_type, target_id, voter_id)
		 DO UPDATE SET direction = EXCLUDED.direction, weight = EXCLUDED.weight, updated_at = NOW()`,
		t.Type, t.ID, voterID, direction, weight,
	); err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}
