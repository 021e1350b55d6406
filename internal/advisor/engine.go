// Package advisor runs one complete pathway evaluation: scoring, gatekeeper
// rules, ranking, profile, scholarship matching, explanation and copy.
package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/p-n-ai/pathfinder/internal/counseling"
	"github.com/p-n-ai/pathfinder/internal/eligibility"
	"github.com/p-n-ai/pathfinder/internal/platform/metrics"
	"github.com/p-n-ai/pathfinder/internal/profile"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

// EngineConfig holds dependencies for the advisor engine.
type EngineConfig struct {
	Bank   *quiz.Bank
	Gate   scoring.GateConfig // zero value uses scoring.DefaultGateConfig
	Events EventLogger        // nil discards events
}

// Engine evaluates answer sequences against a fixed question bank. It holds
// no per-run state and is safe for concurrent use.
type Engine struct {
	bank   *quiz.Bank
	gate   scoring.GateConfig
	events EventLogger
}

// NewEngine creates a new advisor engine.
func NewEngine(cfg EngineConfig) *Engine {
	gate := cfg.Gate
	if gate == (scoring.GateConfig{}) {
		gate = scoring.DefaultGateConfig()
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	return &Engine{
		bank:   cfg.Bank,
		gate:   gate,
		events: events,
	}
}

// Bank returns the engine's question bank.
func (e *Engine) Bank() *quiz.Bank {
	return e.bank
}

// Recommendation is the winning pathway with its display text.
type Recommendation struct {
	Pathway     quiz.Pathway `json:"pathway"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Score       int          `json:"score"`
}

// Result is the combined output of one evaluation.
type Result struct {
	ID          string           `json:"id"`
	Ranked      []scoring.Ranked `json:"ranked"`
	Flag        scoring.Flag     `json:"flag"`
	Scenario    scoring.Scenario `json:"scenario"`
	Recommended *Recommendation  `json:"recommended"` // nil when flagged or nothing scored
	Profile     profile.Profile  `json:"profile"`
	Tags        []string         `json:"tags"`
	Explanation []string         `json:"explanation"`
	Copy        counseling.Copy  `json:"copy"`

	// Scholarships is empty whenever Flag is set; Remediation is set instead.
	Scholarships []eligibility.Scholarship `json:"scholarships"`
	Remediation  []counseling.Step         `json:"remediation,omitempty"`
}

// Evaluate runs the full pipeline over answers, which must be aligned with
// the engine's bank. catalog is the already-fetched scholarship list.
func (e *Engine) Evaluate(ctx context.Context, answers quiz.Answers, catalog []eligibility.Scholarship) Result {
	raw := scoring.Score(answers)
	outcome := scoring.ApplyGatekeepers(e.gate, e.bank, raw, answers)
	ranked := scoring.Rank(outcome.Totals, counseling.Notes(outcome.Scenario))
	top := ranked[0]

	res := Result{
		ID:           uuid.New().String(),
		Ranked:       ranked,
		Flag:         outcome.Flag,
		Scenario:     outcome.Scenario,
		Profile:      profile.Build(answers),
		Explanation:  []string{scoring.FallbackExplanation},
		Copy:         counseling.Resolve(outcome.Scenario),
		Scholarships: []eligibility.Scholarship{},
	}
	if top.Score > 0 && !outcome.Flagged() {
		res.Recommended = &Recommendation{
			Pathway:     top.Pathway,
			Label:       top.Pathway.Label(),
			Description: top.Pathway.Description(),
			Score:       top.Score,
		}
		res.Explanation = scoring.Explain(e.bank, answers, top.Pathway)
	}

	situations := answers.Tags()
	if outcome.Scenario == scoring.ScenarioStandard {
		if situation, ok := counseling.Situation(situations); ok {
			res.Copy, _ = counseling.ResolveSituation(situation)
		}
	}

	if outcome.Flagged() {
		res.Tags = []string{}
		res.Remediation = counseling.RemediationSteps()
	} else {
		extras := append([]string{string(outcome.Scenario)}, situations...)
		res.Tags = eligibility.DeriveTags(ranked, extras...)
		res.Scholarships = eligibility.Filter(catalog, eligibility.Criteria{
			Tags:    res.Tags,
			Profile: &res.Profile,
		})
	}

	metrics.EvaluationsTotal.WithLabelValues(string(res.Scenario)).Inc()
	metrics.ScholarshipMatches.Observe(float64(len(res.Scholarships)))

	event := EvaluationEvent{
		ID:         res.ID,
		Scenario:   string(res.Scenario),
		Flag:       string(res.Flag),
		MatchCount: len(res.Scholarships),
		Answered:   answers.Answered(),
		Data: map[string]any{
			"tags":   res.Tags,
			"totals": outcome.Totals,
		},
	}
	if res.Recommended != nil {
		event.TopPathway = res.Recommended.Pathway.String()
		event.TopScore = res.Recommended.Score
	}
	if err := e.events.LogEvent(ctx, event); err != nil {
		slog.Warn("failed to log evaluation event", "id", res.ID, "error", err)
	}

	slog.Info("evaluation completed",
		"id", res.ID,
		"scenario", res.Scenario,
		"top_pathway", event.TopPathway,
		"matches", len(res.Scholarships),
	)
	return res
}

// EvaluateLabels resolves one option label per question and evaluates the
// result. It fails only when a label does not belong to its question.
func (e *Engine) EvaluateLabels(ctx context.Context, labels []*string, catalog []eligibility.Scholarship) (Result, error) {
	answers, err := e.bank.Resolve(labels)
	if err != nil {
		return Result{}, fmt.Errorf("resolving answers: %w", err)
	}
	return e.Evaluate(ctx, answers, catalog), nil
}
