// Package session tracks in-progress quiz runs: one answer slot per
// question, a cursor that can move back, and a store with expiry.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is one learner's quiz in progress. Answers holds one label per
// question; an empty label is an unanswered slot.
type Session struct {
	ID        string    `json:"id"`
	Index     int       `json:"index"`
	Answers   []string  `json:"answers"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New starts a session for a bank of n questions.
func New(n int) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Answers:   make([]string, n),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Complete reports whether every question has been visited.
func (s *Session) Complete() bool {
	return s.Index >= len(s.Answers)
}

// Answer records label for the current question and advances. An empty
// label skips the question. It reports false when the quiz is complete.
func (s *Session) Answer(label string) bool {
	if s.Complete() {
		return false
	}
	s.Answers[s.Index] = label
	s.Index++
	s.touch()
	return true
}

// Back moves to the previous question, keeping its answer so it can be
// revised. It reports false on the first question.
func (s *Session) Back() bool {
	if s.Index == 0 {
		return false
	}
	s.Index--
	s.touch()
	return true
}

// Restart clears every answer and returns to the first question.
func (s *Session) Restart() {
	clear(s.Answers)
	s.Index = 0
	s.touch()
}

// Labels returns the answers as optional labels, nil for unanswered slots.
func (s *Session) Labels() []*string {
	out := make([]*string, len(s.Answers))
	for i, l := range s.Answers {
		if l != "" {
			out[i] = &l
		}
	}
	return out
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Store persists sessions between messages.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
