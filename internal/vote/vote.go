// Package vote implements weighted up/down voting on community targets.
//
// Each voter holds at most one vote per target. The weight is fixed when the
// vote is cast, so later role or verification changes do not reweight it.
// Voting the same direction twice removes the vote.
package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/p-n-ai/pathfinder/internal/platform/metrics"
)

// Roles recognised by Weight.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
	RoleSuspended = "suspended"
)

// Directions.
const (
	Down = -1
	None = 0
	Up   = 1
)

var (
	ErrInvalidDirection = errors.New("direction must be -1, 0 or 1")
	ErrInvalidTarget    = errors.New("target type and id are required")
)

// Voter identifies who is voting and how much their vote counts.
type Voter struct {
	ID       string
	Role     string
	Verified bool
}

// Weight returns the vote weight for v. Anonymous and suspended voters get
// zero and may not vote.
func Weight(v Voter) int {
	if strings.TrimSpace(v.ID) == "" {
		return 0
	}
	switch v.Role {
	case RoleSuspended:
		return 0
	case RoleAdmin, RoleModerator:
		return 3
	}
	if v.Verified {
		return 2
	}
	return 1
}

// Target is the thing being voted on, such as a community post or reply.
type Target struct {
	Type string `json:"target_type"`
	ID   string `json:"target_id"`
}

func (t Target) validate() error {
	if strings.TrimSpace(t.Type) == "" || strings.TrimSpace(t.ID) == "" {
		return ErrInvalidTarget
	}
	return nil
}

func (t Target) String() string {
	return t.Type + "/" + t.ID
}

// ValidDirection reports whether d is Down, None or Up.
func ValidDirection(d int) bool {
	return d >= Down && d <= Up
}

// Store persists votes. Implementations must keep at most one vote per
// (target, voter) and make Toggle atomic for that pair.
type Store interface {
	// Score sums direction times stored weight over the target's votes.
	Score(ctx context.Context, t Target) (int, error)
	// Direction returns the voter's current direction, None if absent.
	Direction(ctx context.Context, t Target, voterID string) (int, error)
	// SetVote replaces the voter's vote. Direction None removes it.
	SetVote(ctx context.Context, t Target, voterID string, direction, weight int) error
	// Toggle casts direction, or removes the vote if it already points the
	// same way. It returns the resulting direction.
	Toggle(ctx context.Context, t Target, voterID string, direction, weight int) (int, error)
}

// Tally is a voter's view of a target after a cast.
type Tally struct {
	Target    Target `json:"target"`
	Direction int    `json:"direction"`
	Score     int    `json:"score"`
}

// Service applies voting rules on top of a Store.
type Service struct {
	store Store
}

// NewService creates a vote service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Cast records a vote from voter. A voter without weight is ignored and
// the current score is returned unchanged. Direction None clears the vote;
// Up or Down toggles.
func (s *Service) Cast(ctx context.Context, t Target, voter Voter, direction int) (Tally, error) {
	if err := t.validate(); err != nil {
		return Tally{}, err
	}
	if !ValidDirection(direction) {
		return Tally{}, ErrInvalidDirection
	}

	weight := Weight(voter)
	if weight == 0 {
		slog.Debug("vote ignored", "target", t.String(), "role", voter.Role)
		score, err := s.store.Score(ctx, t)
		if err != nil {
			return Tally{}, err
		}
		return Tally{Target: t, Score: score}, nil
	}

	result := None
	if direction == None {
		if err := s.store.SetVote(ctx, t, voter.ID, None, weight); err != nil {
			return Tally{}, fmt.Errorf("clearing vote: %w", err)
		}
	} else {
		var err error
		result, err = s.store.Toggle(ctx, t, voter.ID, direction, weight)
		if err != nil {
			return Tally{}, fmt.Errorf("casting vote: %w", err)
		}
	}

	score, err := s.store.Score(ctx, t)
	if err != nil {
		return Tally{}, err
	}

	metrics.VotesCastTotal.WithLabelValues(directionLabel(result)).Inc()
	slog.Info("vote cast",
		"target", t.String(),
		"voter_id", voter.ID,
		"direction", result,
		"weight", weight,
		"score", score,
	)
	return Tally{Target: t, Direction: result, Score: score}, nil
}

// Get returns the target's score and the voter's direction. An empty voter
// id yields direction None.
func (s *Service) Get(ctx context.Context, t Target, voterID string) (Tally, error) {
	if err := t.validate(); err != nil {
		return Tally{}, err
	}
	score, err := s.store.Score(ctx, t)
	if err != nil {
		return Tally{}, err
	}
	tally := Tally{Target: t, Score: score}
	if voterID != "" {
		tally.Direction, err = s.store.Direction(ctx, t, voterID)
		if err != nil {
			return Tally{}, err
		}
	}
	return tally, nil
}

func directionLabel(d int) string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "cleared"
}
