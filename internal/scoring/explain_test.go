package scoring_test

import (
	"reflect"
	"testing"

	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

func TestExplain(t *testing.T) {
	bank, err := quiz.NewBank([]quiz.Question{
		{ID: "a", Text: "Q-A", Options: []quiz.Option{{Label: "a1", Scores: map[string]int{"ged": 1}}}},
		{ID: "b", Text: "Q-B", Options: []quiz.Option{{Label: "b1", Scores: map[string]int{"ged": 3}}}},
		{ID: "c", Text: "Q-C", Options: []quiz.Option{{Label: "c1", Scores: map[string]int{"alevel": 5}}}},
		{ID: "d", Text: "Q-D", Options: []quiz.Option{{Label: "d1", Scores: map[string]int{"ged": 2}}}},
		{ID: "e", Text: "Q-E", Options: []quiz.Option{{Label: "e1", Scores: map[string]int{"ged": 3}}}},
		{ID: "f", Text: "Q-F", Options: []quiz.Option{{Label: "f1", Scores: map[string]int{"ged": 2}}}},
		{ID: "g", Text: "Q-G", Options: []quiz.Option{{Label: "g1", Scores: map[string]int{"ged": 1}}}},
	})
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}
	answers, _ := bank.Resolve([]*string{strp("a1"), strp("b1"), strp("c1"), strp("d1"), strp("e1"), strp("f1"), nil})

	got := scoring.Explain(bank, answers, quiz.GED)
	want := []string{
		"Q-B — you chose 'b1'.",
		"Q-E — you chose 'e1'.",
		"Q-D — you chose 'd1'.",
		"Q-F — you chose 'f1'.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Explain() = %v, want %v", got, want)
	}
}

func TestExplain_FallbackWhenOnlyBoosted(t *testing.T) {
	age20 := 20
	bank, err := quiz.NewBank([]quiz.Question{
		{ID: "edu", Text: "Grade?", Gate: quiz.GateEducation, Options: []quiz.Option{{Label: "Low", Tier: quiz.TierLow}}},
		{ID: "dest", Text: "Where?", Options: []quiz.Option{{Label: "Home", Scores: map[string]int{"myanmar": 2}}}},
		{ID: "age", Text: "Age?", Gate: quiz.GateAge, Options: []quiz.Option{{Label: "20", Age: &age20}}},
	})
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}
	answers, _ := bank.Resolve([]*string{strp("Low"), strp("Home"), strp("20")})

	out := scoring.ApplyGatekeepers(scoring.DefaultGateConfig(), bank, scoring.Score(answers), answers)
	ranked := scoring.Rank(out.Totals, nil)
	if ranked[0].Pathway != quiz.GED {
		t.Fatalf("top = %s, want ged via boost", ranked[0].Pathway)
	}

	got := scoring.Explain(bank, answers, ranked[0].Pathway)
	if len(got) != 1 || got[0] != scoring.FallbackExplanation {
		t.Errorf("Explain() = %v, want single fallback", got)
	}
}

func TestExplain_EmptyAnswers(t *testing.T) {
	bank, _ := quiz.Default()
	got := scoring.Explain(bank, make(quiz.Answers, bank.Len()), quiz.Myanmar)
	if len(got) != 1 || got[0] != scoring.FallbackExplanation {
		t.Errorf("Explain() = %v, want single fallback", got)
	}
}
