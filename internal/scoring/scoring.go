// Package scoring turns an answer sequence into ranked pathway scores.
//
// The pipeline is Score, then ApplyGatekeepers, then Rank. Every function
// here is pure: the same answers always produce the same result and nothing
// is logged or persisted.
package scoring

import (
	"encoding/json"
	"slices"

	"github.com/p-n-ai/pathfinder/internal/quiz"
)

// Scenario classifies a scoring run for counseling copy.
type Scenario string

const (
	ScenarioFoundation Scenario = "foundation"
	ScenarioFastTrack  Scenario = "fasttrack"
	ScenarioStandard   Scenario = "standard"
)

// Flag replaces the normal scholarship flow when set.
type Flag string

// FlagFoundationRequired routes the learner to remediation steps instead of
// scholarships.
const FlagFoundationRequired Flag = "FOUNDATION_REQUIRED"

// MarshalJSON renders an unset flag as null.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

// Score sums every answered option's points into per-pathway totals.
// Unanswered slots and unknown pathway keys contribute nothing.
func Score(answers quiz.Answers) quiz.Totals {
	var totals quiz.Totals
	for _, opt := range answers {
		if opt == nil {
			continue
		}
		for key, pts := range opt.Scores {
			if p, ok := quiz.ParsePathway(key); ok {
				totals[p] += pts
			}
		}
	}
	return totals
}

// Ranked is one pathway's position in a ranking.
type Ranked struct {
	Pathway quiz.Pathway `json:"pathway"`
	Label   string       `json:"label"`
	Score   int          `json:"score"`
	Note    string       `json:"note,omitempty"`
}

// NoteFunc supplies the counseling note for a pathway.
type NoteFunc func(quiz.Pathway) string

// Rank orders all pathways by score, highest first. Equal scores keep the
// fixed pathway order. note may be nil.
func Rank(totals quiz.Totals, note NoteFunc) []Ranked {
	ranked := make([]Ranked, 0, quiz.NumPathways)
	for _, p := range quiz.Pathways {
		r := Ranked{Pathway: p, Label: p.Label(), Score: totals[p]}
		if note != nil {
			r.Note = note(p)
		}
		ranked = append(ranked, r)
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Score - a.Score
	})
	return ranked
}

// Top returns up to n leading entries with a positive score.
func Top(ranked []Ranked, n int) []Ranked {
	var out []Ranked
	for _, r := range ranked {
		if len(out) >= n {
			break
		}
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	return out
}
