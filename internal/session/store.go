package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/p-n-ai/pathfinder/internal/platform/cache"
	"github.com/p-n-ai/pathfinder/internal/platform/storage"
)

// MemoryStore is an in-memory Store. Sessions idle longer than the TTL are
// treated as missing and dropped on access.
type MemoryStore struct {
	ttl      time.Duration
	sessions map[string]Session
	mu       sync.Mutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && time.Since(s.UpdatedAt) > m.ttl {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	s.Answers = append([]string(nil), s.Answers...)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("session id is required")
	}

	cp := *s
	cp.Answers = append([]string(nil), s.Answers...)

	m.mu.Lock()
	m.sessions[s.ID] = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RedisStore keeps sessions as JSON values with a sliding TTL.
type RedisStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(c *cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func key(id string) string {
	return cache.Key("session", id)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.cache.GetJSON(ctx, key(id), &s)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storage.Unavailable("get session", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if err := r.cache.SetJSON(ctx, key(s.ID), s, r.ttl); err != nil {
		return storage.Unavailable("save session", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, key(id)); err != nil {
		return storage.Unavailable("delete session", err)
	}
	return nil
}
