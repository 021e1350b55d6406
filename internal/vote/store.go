package vote

import (
	"context"
	"sync"
)

type voteKey struct {
	target Target
	voter  string
}

type stored struct {
	direction int
	weight    int
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	votes map[voteKey]stored
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory vote store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		votes: make(map[voteKey]stored),
	}
}

func (s *MemoryStore) Score(_ context.Context, t Target) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for k, v := range s.votes {
		if k.target == t {
			total += v.direction * v.weight
		}
	}
	return total, nil
}

func (s *MemoryStore) Direction(_ context.Context, t Target, voterID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.votes[voteKey{t, voterID}].direction, nil
}

func (s *MemoryStore) SetVote(_ context.Context, t Target, voterID string, direction, weight int) error {
	if !ValidDirection(direction) {
		return ErrInvalidDirection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(voteKey{t, voterID}, direction, weight)
	return nil
}

func (s *MemoryStore) Toggle(_ context.Context, t Target, voterID string, direction, weight int) (int, error) {
	if !ValidDirection(direction) {
		return None, ErrInvalidDirection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := voteKey{t, voterID}
	if s.votes[k].direction == direction {
		direction = None
	}
	s.set(k, direction, weight)
	return direction, nil
}

func (s *MemoryStore) set(k voteKey, direction, weight int) {
	if direction == None {
		delete(s.votes, k)
		return
	}
	s.votes[k] = stored{direction: direction, weight: weight}
}
