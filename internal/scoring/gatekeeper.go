package scoring

import "github.com/p-n-ai/pathfinder/internal/quiz"

const (
	DefaultAgeThreshold   = 16
	DefaultFastTrackBoost = 6
)

// GateConfig holds the gatekeeper constants.
type GateConfig struct {
	// AgeThreshold is the minimum age, in years, for GED-style entry.
	AgeThreshold int
	// FastTrackBoost is added to GED when the fast-track rule fires.
	FastTrackBoost int
}

// DefaultGateConfig returns the stock thresholds.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		AgeThreshold:   DefaultAgeThreshold,
		FastTrackBoost: DefaultFastTrackBoost,
	}
}

// Outcome is the result of applying the gatekeeper rules.
type Outcome struct {
	Totals   quiz.Totals
	Flag     Flag
	Scenario Scenario
}

// Flagged reports whether the foundation flag is set.
func (o Outcome) Flagged() bool {
	return o.Flag == FlagFoundationRequired
}

// pathways needing a stronger academic base than the lowest tier provides.
var strongBase = []quiz.Pathway{quiz.ALevel, quiz.OSSD}

// ApplyGatekeepers runs the gate rules in priority order against the
// answers to the bank's education and age questions:
//
//  1. low tier and under age: every total is zeroed and the run is flagged.
//  2. low tier and at or above age: GED gets the boost, A-Level and OSSD are zeroed.
//  3. low tier with no age answer: A-Level and OSSD are zeroed.
//
// Without an education answer no rule fires.
func ApplyGatekeepers(cfg GateConfig, bank *quiz.Bank, totals quiz.Totals, answers quiz.Answers) Outcome {
	out := Outcome{Totals: totals, Scenario: ScenarioStandard}

	edu := bank.GateAnswer(answers, quiz.GateEducation)
	if !edu.LowTier() {
		return out
	}

	age := bank.GateAnswer(answers, quiz.GateAge)
	switch {
	case age != nil && age.Age != nil && *age.Age < cfg.AgeThreshold:
		out.Totals = quiz.Totals{}
		out.Flag = FlagFoundationRequired
		out.Scenario = ScenarioFoundation
	case age != nil && age.Age != nil:
		out.Totals[quiz.GED] += cfg.FastTrackBoost
		for _, p := range strongBase {
			out.Totals[p] = 0
		}
		out.Scenario = ScenarioFastTrack
	default:
		for _, p := range strongBase {
			out.Totals[p] = 0
		}
	}
	return out
}
