package counseling

import (
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

var notes = map[scoring.Scenario][quiz.NumPathways]string{
	scoring.ScenarioFoundation: {
		quiz.Myanmar: "Open to you once you complete Grade 9–10 at a learning centre or school.",
		quiz.GED:     "The GED requires you to be at least 16. Use the time until then to build your Grade 9 foundation.",
		quiz.OSSD:    "OSSD credits build on a Grade 9 base. Come back to it once you have that level.",
		quiz.IGCSE:   "IGCSE registration opens after Grade 9. It is a strong next target once you get there.",
		quiz.ALevel:  "A-Levels follow IGCSE or Grade 11. This is a longer-term goal for now.",
	},
	scoring.ScenarioFastTrack: {
		quiz.Myanmar: "Returning to the national curriculum is possible, but it is a slower route from where you are.",
		quiz.GED:     "Recommended: at your age the GED has no grade prerequisite and is the fastest recognised route back into education.",
		quiz.OSSD:    "OSSD needs a stronger academic base. Completing the GED first opens it up.",
		quiz.IGCSE:   "IGCSE is available, but it takes longer than the GED to reach a recognised qualification.",
		quiz.ALevel:  "A-Levels require completed secondary study. Consider them after the GED.",
	},
	scoring.ScenarioStandard: {
		quiz.Myanmar: "Best if you want local recognition and plan to study at a Myanmar university.",
		quiz.GED:     "Flexible and self-paced, suited to learners who need a recognised equivalency quickly.",
		quiz.OSSD:    "Credit-based and often online, widely accepted by Canadian and international universities.",
		quiz.IGCSE:   "Broad, exam-based and recognised across the UK and Commonwealth.",
		quiz.ALevel:  "In-depth study of two or three subjects, strong for UK university entry.",
	},
}

// Note returns the counseling note for a pathway under a scenario.
func Note(scenario scoring.Scenario, p quiz.Pathway) string {
	if !p.Valid() {
		return ""
	}
	byPathway, ok := notes[scenario]
	if !ok {
		byPathway = notes[scoring.ScenarioStandard]
	}
	return byPathway[p]
}

// Notes binds Note to a scenario for use with scoring.Rank.
func Notes(scenario scoring.Scenario) scoring.NoteFunc {
	return func(p quiz.Pathway) string {
		return Note(scenario, p)
	}
}
