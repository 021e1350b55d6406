// Package counseling holds the fixed guidance copy shown alongside a result.
package counseling

import "github.com/p-n-ai/pathfinder/internal/scoring"

// Situation tags carried by quiz answers.
const (
	SituationInterrupted = "interrupted"
	SituationDisplaced   = "displaced"
)

// Copy is the headline block for a result page.
type Copy struct {
	Key          string `json:"key"`
	Headline     string `json:"headline"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}

// Step is one remediation step for a foundation-flagged learner.
type Step struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var scenarioCopy = map[scoring.Scenario]Copy{
	scoring.ScenarioFoundation: {
		Key:      string(scoring.ScenarioFoundation),
		Headline: "Your next step: Build your foundation",
		Body: "You are at an important early stage of your education journey. Right now the best move is to complete Grade 9–10 through a community learning centre, monastic school, or catch-up programme. " +
			"Once you reach Grade 9 level you will unlock access to GED, IGCSE, OSSD, and A-Levels, plus the scholarships that come with them.",
		CallToAction: "Find a learning centre near you",
	},
	scoring.ScenarioFastTrack: {
		Key:      string(scoring.ScenarioFastTrack),
		Headline: "Your situation qualifies for a fast-track route",
		Body: "Even though your formal schooling was interrupted, your age means you can access the GED right now. The GED is a recognised high-school equivalency used by universities in the US, Canada, and beyond. " +
			"Many Myanmar adults complete all four subject tests within 6–12 months. From there, OSSD and university pathways open up.",
		CallToAction: "Learn more about GED in Myanmar",
	},
	scoring.ScenarioStandard: {
		Key:      string(scoring.ScenarioStandard),
		Headline: "You have a clear academic pathway ahead",
		Body: "Based on your answers, you are well-positioned to pursue structured qualifications. Your top-ranked pathways below reflect your goals, budget, and learning style. " +
			"Review the scholarship cards to find financial support that matches your chosen route.",
		CallToAction: "View your matched scholarships",
	},
}

var situationCopy = map[string]Copy{
	SituationInterrupted: {
		Key:      SituationInterrupted,
		Headline: "Returning to education: you have strong options",
		Body: "Gaps in schooling are common for young people in Myanmar, and there are programmes designed specifically for your situation. GED and OSSD both offer flexible, self-paced study that fits around work or family commitments. " +
			"Several scholarships below prioritise students with interrupted education.",
		CallToAction: "Explore flexible programme options",
	},
	SituationDisplaced: {
		Key:      SituationDisplaced,
		Headline: "Support is available for displaced learners",
		Body: "If you are away from your home region or have had to move, there are scholarships and programmes built specifically for you. IGCSE and GED can both be studied online or at border learning centres. " +
			"UNICEF and East Meets West Foundation programmes below offer financial support and safe study environments.",
		CallToAction: "See displaced learner scholarships",
	},
}

// Resolve returns the copy for a scenario, falling back to the standard copy.
func Resolve(scenario scoring.Scenario) Copy {
	if c, ok := scenarioCopy[scenario]; ok {
		return c
	}
	return scenarioCopy[scoring.ScenarioStandard]
}

// ResolveSituation returns the copy for a situation tag.
func ResolveSituation(situation string) (Copy, bool) {
	c, ok := situationCopy[situation]
	return c, ok
}

// Situation picks the situation with dedicated copy from a learner's tags.
// Displacement takes precedence over interruption.
func Situation(tags []string) (string, bool) {
	var interrupted bool
	for _, t := range tags {
		switch t {
		case SituationDisplaced:
			return SituationDisplaced, true
		case SituationInterrupted:
			interrupted = true
		}
	}
	if interrupted {
		return SituationInterrupted, true
	}
	return "", false
}

var remediationSteps = []Step{
	{
		Step:        1,
		Title:       "Enrol in a catch-up or bridging class",
		Description: "Look for community learning centres, monastic schools, or NGO-run education programmes in your township. Many offer free or subsidised Grade 9–10 equivalency courses.",
	},
	{
		Step:        2,
		Title:       "Complete Grade 9 level",
		Description: "Finishing Grade 9 unlocks IGCSE registration and GED eligibility (at age 16). It is the single most important milestone from where you are now.",
	},
	{
		Step:        3,
		Title:       "Turn 16, then consider GED",
		Description: "The GED has no grade-level prerequisite once you are 16. If formal schooling is not an option, GED is the fastest bridge to higher education and work opportunities.",
	},
	{
		Step:        4,
		Title:       "Retake this quiz at Grade 9 level",
		Description: "Come back when you have completed Grade 9 (or turned 16). Your recommendations and scholarship options will look very different.",
	},
}

// RemediationSteps returns the fixed foundation plan. The slice is a copy.
func RemediationSteps() []Step {
	return append([]Step(nil), remediationSteps...)
}
