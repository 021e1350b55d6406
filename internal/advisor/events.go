package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// EvaluationEvent records the outcome of one evaluation run. Answers are not
// stored; only the classification and counts are.
type EvaluationEvent struct {
	ID         string
	Scenario   string
	Flag       string
	TopPathway string
	TopScore   int
	MatchCount int
	Answered   int
	Data       map[string]any
	CreatedAt  time.Time
}

// EventLogger defines evaluation event logging behavior.
type EventLogger interface {
	LogEvent(ctx context.Context, event EvaluationEvent) error
}

// NopEventLogger ignores all events.
type NopEventLogger struct{}

func (NopEventLogger) LogEvent(context.Context, EvaluationEvent) error {
	return nil
}

// MemoryEventLogger stores events in memory for tests.
type MemoryEventLogger struct {
	mu     sync.Mutex
	events []EvaluationEvent
}

func NewMemoryEventLogger() *MemoryEventLogger {
	return &MemoryEventLogger{
		events: []EvaluationEvent{},
	}
}

func (l *MemoryEventLogger) LogEvent(_ context.Context, event EvaluationEvent) error {
	if event.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryEventLogger) Events() []EvaluationEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]EvaluationEvent{}, l.events...)
}

// PostgresEventLogger inserts events into the evaluation_events table.
type PostgresEventLogger struct {
	pool *pgxpool.Pool
}

func NewPostgresEventLogger(pool *pgxpool.Pool) *PostgresEventLogger {
	return &PostgresEventLogger{pool: pool}
}

func (l *PostgresEventLogger) LogEvent(ctx context.Context, event EvaluationEvent) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("event logger pool is nil")
	}
	if event.ID == "" {
		return fmt.Errorf("event id is required")
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err = l.pool.Exec(ctx,
		`INSERT INTO evaluation_events (id, scenario, flag, top_pathway, top_score, match_count, answered, data, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)`,
		event.ID,
		event.Scenario,
		nullIfEmpty(event.Flag),
		nullIfEmpty(event.TopPathway),
		event.TopScore,
		event.MatchCount,
		event.Answered,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation event: %w", err)
	}

	slog.Debug("evaluation event logged",
		"id", event.ID,
		"scenario", event.Scenario,
		"top_pathway", event.TopPathway,
	)
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
